// Package server wires the administrative dispatcher to HTTP.
//
// # Endpoints
//
// One route per administrative action, addressed as /{action} with the flat
// parameter map taken from the query string (or form body):
//
//	/adduser?username=prawnsalad&password=mypassword
//	/addnetwork?username=prawnsalad&net_name=libera&net_addr=irc.libera.chat&net_port=6697&net_ssl=1
//	/listnetworks?username=prawnsalad
//
// The optional response parameter selects the body encoding (json default,
// pairs alternate). Responses always carry status 200 with the outcome in
// the body's error field, and declare an exact Content-Length.
//
// /healthz answers liveness checks without credentials; everything else
// sits behind the auth package's administrator gate.
package server

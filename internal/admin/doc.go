// Package admin implements the administrative operation set and its
// dispatcher for the bouncer control-plane API.
//
// # Overview
//
// Service maps the nine recognized action names onto operations:
//
//   - adduser            (username, password)
//   - deluser            (username)
//   - userpassword       (username, password)
//   - addnetwork         (username, net_name, net_addr, net_port, [net_pass, net_ssl])
//   - delnetwork         (username, net_name)
//   - listnetworks       (username)
//   - listusers          (n/a)
//   - networkconnect     (username, net_name)
//   - networkdisconnect  (username, net_name)
//
// Exactly one operation runs per Dispatch call; an unrecognized action
// returns unknown_method without touching the registry.
//
// # Operation shape
//
// Every operation parses its flat string parameters into a typed request
// struct up front, so validation failures (invalid_params) are side-effect
// free. Registry calls follow, then a Result. Mutating operations append an
// audit entry and ask the registry to persist on success — except
// networkconnect/networkdisconnect, which only flip transient live state
// and deliberately skip both.
//
// # Error codes
//
// Results carry error=false on success or one of: invalid_params,
// user_not_found, user_not_exists, network_not_found, network_exists,
// limit_reached, error_adding_user, error_deleting_user,
// error_adding_network, unknown_method. Engine failures may add a
// description field. internal_error covers registry failures that have no
// code of their own, always with a description.
//
// # Usage
//
//	svc := admin.NewService(engine)
//	result := svc.Dispatch(ctx, "adduser", admin.Params{
//		"username": "prawnsalad",
//		"password": "mypassword",
//	})
package admin

// Package config loads the bncctl YAML configuration file.
//
// Configuration sections:
//
//	server:
//	  http_addr: 127.0.0.1:3000
//	database:
//	  path: /var/lib/bncctl/bncctl.db
//	auth:
//	  jwt_secret: ${BNCCTL_JWT_SECRET}
//	  token_ttl: 24h
//	limits:
//	  max_networks_per_user: 3
//	logging:
//	  level: info
//	  format: text
//
// ${VAR} references are expanded from the environment before parsing.
package config

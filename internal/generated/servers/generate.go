// Package servers holds the HTTP contract of the order API: the OpenAPI document, the
// request and response models it defines, and the echo wrapper that binds path, query
// and header parameters before calling a ServerInterface.
//
// types.go and server.go are produced from openapi.json; edit the document and run
// go generate instead of editing them.
package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config types.cfg.yaml openapi.json
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config server.cfg.yaml openapi.json

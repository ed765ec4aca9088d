// Package server holds the chi server generated from api/v1/openapi.yaml.
package server

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen --config=cfg.yaml ../../../api/v1/openapi.yaml

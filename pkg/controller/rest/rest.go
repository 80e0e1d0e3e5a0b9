/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package rest provides the base types shared by all REST controller operations.
package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/securekey/fabric-wallet-go/component/log"
	"github.com/securekey/fabric-wallet-go/pkg/controller/command"
)

var logger = log.New("fabric-wallet/rest")

// Handler http handler for each controller API endpoint.
type Handler interface {
	Path() string
	Method() string
	Handle() http.HandlerFunc
}

// genericErrorBody is the REST API error response body
// swagger:response genericError
type genericErrorBody struct {
	// in: body
	Code command.Code `json:"code"`
	// in: body
	Message string `json:"message"`
}

// Execute runs the given command handler and writes its response or error to the
// http response.
func Execute(exec command.Exec, rw http.ResponseWriter, req io.Reader) {
	if err := exec(rw, req); err != nil {
		SendError(rw, err)
	}
}

// SendError sends the command error to the http response, mapping validation
// errors to BAD REQUEST and execution errors to INTERNAL SERVER ERROR.
func SendError(rw http.ResponseWriter, err command.Error) {
	switch err.Type() {
	case command.ValidationError:
		SendHTTPStatusError(rw, http.StatusBadRequest, err.Code(), err)
	default:
		SendHTTPStatusError(rw, http.StatusInternalServerError, err.Code(), err)
	}
}

// SendHTTPStatusError sends given http status code to the response with the error body.
func SendHTTPStatusError(rw http.ResponseWriter, statusCode int, code command.Code, err error) {
	rw.WriteHeader(statusCode)
	rw.Header().Set("Content-Type", "application/json")

	e := json.NewEncoder(rw).Encode(genericErrorBody{
		Code:    code,
		Message: err.Error(),
	})
	if e != nil {
		logger.Errorf("Unable to send error response, %s", e)
	}
}

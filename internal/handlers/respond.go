package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lms/package/client/database"
	"lms/package/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("Can not marshal response: " + err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(body); err != nil {
		logger.Log.Error("Can not write response: " + err.Error())
	}
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	logger.Log.Info("Request rejected: " + msg)
	WriteJSON(w, status, errorBody{Error: msg})
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, messageBody{Message: msg})
}

// WriteStorageError maps database.ErrNotFound to a 404 with notFoundMsg and
// every other storage failure to a 500 carrying the error message.
func WriteStorageError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, database.ErrNotFound) {
		WriteError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	logger.Log.Error("Storage failure: " + err.Error())
	WriteJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

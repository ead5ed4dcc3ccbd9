package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/moftahak/studio-service/internal/utils"
)

var validate = validator.New()

// studyID extracts and parses the {studyID} path variable, writing the
// 400 response itself on failure.
func studyID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["studyID"]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid study id", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func respondRejected(w http.ResponseWriter, publicMessage string) {
	utils.RespondErrorWithCode(
		w, http.StatusUnprocessableEntity, utils.ErrCodeRejected, publicMessage, nil,
	)
}

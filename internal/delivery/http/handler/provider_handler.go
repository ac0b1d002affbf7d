package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"appointment-booking-api/internal/delivery/dto"
	"appointment-booking-api/internal/delivery/http/middleware"
	"appointment-booking-api/internal/usecase"
	"appointment-booking-api/pkg/response"
	"appointment-booking-api/pkg/validator"

	"github.com/gorilla/mux"
)

type ProviderHandler struct {
	providerUsecase usecase.ProviderUsecase
	validator       *validator.CustomValidator
}

func NewProviderHandler(providerUsecase usecase.ProviderUsecase, validator *validator.CustomValidator) *ProviderHandler {
	return &ProviderHandler{
		providerUsecase: providerUsecase,
		validator:       validator,
	}
}

func (h *ProviderHandler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())

	provider, err := h.providerUsecase.CreateProvider(r.Context(), actorID, &req)
	if err != nil {
		var whErr *usecase.WorkingHoursValidationError
		if errors.As(err, &whErr) {
			response.ValidationError(w, whErr.Fields)
			return
		}
		response.InternalServerError(w, "Failed to create provider")
		return
	}

	response.Success(w, http.StatusCreated, "Provider created successfully", provider)
}

func (h *ProviderHandler) UpdateProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := parseUintVar(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	var req dto.UpdateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())

	provider, err := h.providerUsecase.UpdateProvider(r.Context(), actorID, providerID, &req)
	if err != nil {
		var whErr *usecase.WorkingHoursValidationError
		switch {
		case errors.As(err, &whErr):
			response.ValidationError(w, whErr.Fields)
		case errors.Is(err, usecase.ErrProviderNotFound):
			response.NotFound(w, "Provider not found")
		default:
			response.InternalServerError(w, "Failed to update provider")
		}
		return
	}

	response.Success(w, http.StatusOK, "Provider updated successfully", provider)
}

func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := parseUintVar(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	provider, err := h.providerUsecase.GetProvider(r.Context(), providerID)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.NotFound(w, "Provider not found")
		default:
			response.InternalServerError(w, "Failed to get provider")
		}
		return
	}

	response.Success(w, http.StatusOK, "Provider retrieved successfully", provider)
}

func (h *ProviderHandler) GetAllProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.providerUsecase.GetAllProviders(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get providers")
		return
	}

	response.Success(w, http.StatusOK, "Providers retrieved successfully", providers)
}

func parseUintVar(r *http.Request, name string) (uint, error) {
	value, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

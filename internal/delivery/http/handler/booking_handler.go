package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"appointment-booking-api/internal/delivery/dto"
	"appointment-booking-api/internal/delivery/http/middleware"
	"appointment-booking-api/internal/domain/entity"
	"appointment-booking-api/internal/usecase"
	"appointment-booking-api/pkg/response"
	"appointment-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase      usecase.BookingUsecase
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewBookingHandler(
	bookingUsecase usecase.BookingUsecase,
	availabilityUsecase usecase.AvailabilityUsecase,
	validator *validator.CustomValidator,
) *BookingHandler {
	return &BookingHandler{
		bookingUsecase:      bookingUsecase,
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// GetAvailableSlots lists bookable start times for a provider and service.
// @Summary List available slots
// @Tags Bookings
// @Produce json
// @Param provider_id query int true "Provider ID"
// @Param service_id query int true "Service ID"
// @Param days query int false "Horizon in days (default 30)"
// @Success 200 {object} response.Response
// @Router /bookings/available-slots [get]
func (h *BookingHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	providerID, err := parseUintQuery(r, "provider_id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider_id", nil)
		return
	}
	serviceID, err := parseUintQuery(r, "service_id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service_id", nil)
		return
	}
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	slots, err := h.availabilityUsecase.GenerateAvailableSlots(r.Context(), providerID, serviceID, days)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.NotFound(w, "Provider not found")
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to generate available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", &dto.AvailableSlotsResponse{
		ProviderID: providerID,
		ServiceID:  serviceID,
		Slots:      slots,
		Total:      len(slots),
	})
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		h.writeCreateBookingError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

// writeCreateBookingError maps validation gate rejections to 400 with the
// gate's own message, missing references to 404, and a taken slot to 409.
func (h *BookingHandler) writeCreateBookingError(w http.ResponseWriter, err error) {
	var closedDay *usecase.ClosedDayError
	var outside *usecase.OutsideWorkingHoursError

	switch {
	case errors.Is(err, usecase.ErrProviderNotFound):
		response.NotFound(w, "Provider not found")
	case errors.Is(err, usecase.ErrServiceNotFound):
		response.NotFound(w, "Service not found")
	case errors.Is(err, usecase.ErrSlotAlreadyBooked):
		response.Conflict(w, err.Error())
	case errors.As(err, &closedDay),
		errors.As(err, &outside),
		errors.Is(err, usecase.ErrInvalidDatetime),
		errors.Is(err, usecase.ErrMalformedWorkingHours),
		errors.Is(err, usecase.ErrServiceExceedsClosing):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to create booking")
	}
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	page, limit := parsePagination(r)

	bookings, err := h.bookingUsecase.GetUserBookings(r.Context(), userID, page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	bookings, err := h.bookingUsecase.GetAllBookings(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	err = h.bookingUsecase.CancelBooking(r.Context(), bookingID, userID, middleware.IsAdminRequest(r))
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		case entity.ErrBookingAlreadyCancelled:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to cancel booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", nil)
}

func (h *BookingHandler) HardDeleteBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	err = h.bookingUsecase.HardDeleteBooking(r.Context(), bookingID, userID, middleware.IsAdminRequest(r))
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned:
			response.Forbidden(w, "Booking does not belong to you")
		case entity.ErrOnlyCancelledCanBeDeleted:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to delete booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking deleted permanently", nil)
}

func parseUintQuery(r *http.Request, name string) (uint, error) {
	value, err := strconv.ParseUint(r.URL.Query().Get(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/common"
	"github.com/andysilva90/flight-fare-optimizer/internal/constants"
	"github.com/andysilva90/flight-fare-optimizer/internal/models/dtos"
	"github.com/andysilva90/flight-fare-optimizer/internal/optimizer"

	"github.com/go-chi/chi/v5"
)

// ShareValidator is the share-token surface the itinerary handlers use.
type ShareValidator interface {
	GenerateShareToken(sourceCity, destinationCity string, ttl time.Duration) (string, time.Time, error)
	ValidateToken(tokenString string) (*common.SharedRoute, error)
	MarkTokenAsUsed(tokenID string, expiresAt time.Time)
}

const shareTokenTTL = 24 * time.Hour

// solveStatus maps optimizer failures to HTTP status codes. Resource
// exhaustion is 503 so clients know to retry with a smaller request.
func solveStatus(err error) (int, string) {
	if errors.Is(err, optimizer.ErrNodeBudget) || errors.Is(err, optimizer.ErrNegativeCost) {
		return http.StatusServiceUnavailable, constants.ErrMsgSolverFailure
	}
	return http.StatusInternalServerError, ""
}

// CheapestFlightHandler handles POST /api/v1/itineraries/cheapest
func CheapestFlightHandler(svc ItineraryFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CheapestFlightReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.ErrMsgInvalidBody, http.StatusBadRequest)
			return
		}

		dto, err := svc.FindCheapestFlight(r.Context(), req)
		if err != nil {
			code, msg := solveStatus(err)
			if msg == "" {
				msg = err.Error()
			}
			common.RespondError(w, initTime, nil, msg, code)
			return
		}

		msg := "Cheapest flight found"
		if !dto.Feasible {
			msg = constants.ErrMsgNoFeasible
		}
		common.RespondSuccess(w, initTime, msg, dto)
	}
}

// CheapestRouteHandler handles POST /api/v1/itineraries/route
func CheapestRouteHandler(svc ItineraryFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CheapestRouteReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.ErrMsgInvalidBody, http.StatusBadRequest)
			return
		}
		if req.SourceCity == "" || req.DestinationCity == "" {
			common.RespondError(w, initTime, nil, constants.ErrMsgMissingCities, http.StatusBadRequest)
			return
		}

		dto, err := svc.FindCheapestRoute(r.Context(), req)
		if err != nil {
			code, msg := solveStatus(err)
			if msg == "" {
				msg = err.Error()
			}
			common.RespondError(w, initTime, nil, msg, code)
			return
		}

		msg := "Cheapest route found"
		if !dto.Feasible {
			msg = constants.ErrMsgNoFeasible
		}
		common.RespondSuccess(w, initTime, msg, dto)
	}
}

// ShareItineraryHandler handles POST /api/v1/itineraries/share
func ShareItineraryHandler(signer ShareValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ShareItineraryReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.ErrMsgInvalidBody, http.StatusBadRequest)
			return
		}
		if req.Route.SourceCity == "" || req.Route.DestinationCity == "" {
			common.RespondError(w, initTime, nil, constants.ErrMsgMissingCities, http.StatusBadRequest)
			return
		}

		token, expiresAt, err := signer.GenerateShareToken(req.Route.SourceCity, req.Route.DestinationCity, shareTokenTTL)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Share link generated", dtos.ShareTokenDto{
			Token:     token,
			ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		}, http.StatusCreated)
	}
}

// SharedItineraryHandler handles GET /shared/{token}. The token is
// single use: it is consumed on the first successful solve.
func SharedItineraryHandler(svc ItineraryFinder, signer ShareValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		token := chi.URLParam(r, "token")
		route, err := signer.ValidateToken(token)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusUnauthorized)
			return
		}

		dto, err := svc.FindCheapestRoute(r.Context(), dtos.CheapestRouteReq{
			SourceCity:      route.SourceCity,
			DestinationCity: route.DestinationCity,
		})
		if err != nil {
			code, msg := solveStatus(err)
			if msg == "" {
				msg = err.Error()
			}
			common.RespondError(w, initTime, nil, msg, code)
			return
		}

		signer.MarkTokenAsUsed(route.TokenID, route.ExpiresAt)

		msg := "Cheapest route found"
		if !dto.Feasible {
			msg = constants.ErrMsgNoFeasible
		}
		common.RespondSuccess(w, initTime, msg, dto)
	}
}

// Package mortgage contains the HTTP handlers of the mortgage API.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like the result
// cache. To inject dependencies we use a factory function that:
//  1. Accepts dependencies (cache)
//  2. Returns a function with the exact signature the router needs
//
// Because the inner function "closes over" the outer parameters, it can
// access the cache even after the factory call has returned:
//
//	router.HandleFunc("POST /api/mortgage/calculate", mortgage.Calculate(store))
//	//                                                ^^^^^^^^^^^^^^^^^^^^^^^^
//	//                       Calculate(store) is called ONCE at startup.
//	//                       It returns a handler func which is called
//	//                       on EVERY incoming request.
//
// The handlers own the wire concerns (content type, decode, status
// codes, caching); all loan semantics live in the calculator package.
package mortgage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/mortgage-api/internal/cache"
	"github.com/aanand-mishra/mortgage-api/internal/calculator"
	"github.com/aanand-mishra/mortgage-api/internal/types"
	"github.com/aanand-mishra/mortgage-api/internal/utils/response"
)

// ServiceName identifies this service in the health payload.
const ServiceName = "mortgage-calculator"

// ─────────────────────────────────────────────────────────────────────────────
// Calculate handles POST /api/mortgage/calculate
// Validates the three loan parameters and returns the fixed monthly
// payment plus totals.
//
// Request body (JSON):
//
//	{ "principal": 300000, "annualRate": 6.5, "years": 30 }
//
// Success response (200 OK):
//
//	{ "success": true, "monthlyPayment": 1896.2, "totalPayment": 682633.47,
//	  "totalInterest": 382633.47, "principal": 300000, "annualRate": 6.5,
//	  "years": 30 }
//
// Error responses:
//
//	400 Bad Request — wrong content type, empty/malformed body,
//	                  validation failure (with "details"), or a
//	                  calculation that broke down
//	500 Internal    — anything unexpected; the body is always generic
//
// Results are memoized in the cache keyed by the validated inputs: the
// calculation is pure, so two identical loans always serve one body.
// ─────────────────────────────────────────────────────────────────────────────
func Calculate(store cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("calculating mortgage payment")

		req, ok := decodeRequest(w, r)
		if !ok {
			return
		}

		loan, err := calculator.Validate(req)
		if err != nil {
			writeValidationFailure(w, err)
			return
		}

		key := cacheKey(loan)
		if body, hit := store.Get(r.Context(), key); hit {
			slog.Info("serving cached calculation")
			response.WriteRaw(w, http.StatusOK, []byte(body))
			return
		}

		result, err := calculator.Calculate(loan)
		if err != nil {
			writeCalculationFailure(w, err)
			return
		}

		// Deliberately no loan values in the log line.
		slog.Info("mortgage calculation completed")

		payload := types.NewCalculateResponse(result)
		if body, err := json.Marshal(payload); err == nil {
			if err := store.Set(r.Context(), key, string(body)); err != nil {
				slog.Warn("failed to cache calculation",
					slog.String("error", err.Error()))
			}
		}

		response.WriteJSON(w, http.StatusOK, payload)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Schedule handles POST /api/mortgage/schedule
// Same request body and validation as Calculate; the response carries
// the calculation summary plus the year-by-year amortization breakdown
// the charts are drawn from.
//
// Success response (200 OK):
//
//	{ "success": true, ...summary fields..., "schedule": [
//	  { "year": 1, "remainingBalance": 296592.8, "yearlyInterest": 19347.25,
//	    "yearlyPrincipal": 3407.2, "cumulativePaid": 22754.45 }, ... ] }
//
// ─────────────────────────────────────────────────────────────────────────────
func Schedule() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("generating amortization schedule")

		req, ok := decodeRequest(w, r)
		if !ok {
			return
		}

		loan, err := calculator.Validate(req)
		if err != nil {
			writeValidationFailure(w, err)
			return
		}

		result, err := calculator.Calculate(loan)
		if err != nil {
			writeCalculationFailure(w, err)
			return
		}

		schedule := calculator.GenerateSchedule(loan, result.MonthlyPayment)

		slog.Info("amortization schedule completed",
			slog.Int("years", len(schedule)))

		response.WriteJSON(w, http.StatusOK,
			types.NewScheduleResponse(result, schedule))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Health handles GET /api/mortgage/health
// Liveness probe for load balancers and uptime checks.
//
// Success response (200 OK):
//
//	{ "status": "healthy", "service": "mortgage-calculator" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": ServiceName,
		})
	}
}

// decodeRequest enforces the JSON content type and decodes the body.
// On failure it writes the 400 response itself and returns ok=false.
func decodeRequest(w http.ResponseWriter, r *http.Request) (types.CalculateRequest, bool) {
	var req types.CalculateRequest

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(response.MsgContentType))
		return req, false
	}

	err = json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(response.MsgEmptyBody))
		return req, false
	}
	if err != nil {
		// The decode error text can quote attacker-controlled body
		// fragments; log it, respond generically.
		slog.Info("rejecting malformed request body",
			slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(response.MsgInvalidBody))
		return req, false
	}

	return req, true
}

// writeValidationFailure translates a Validate error into the itemized
// 400 response. Suspicious inputs additionally get a warning log — with
// the field name only, never the submitted value.
func writeValidationFailure(w http.ResponseWriter, err error) {
	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		slog.Error("validator returned a non-field error",
			slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError,
			response.GeneralError(response.MsgUnexpectedError))
		return
	}

	for _, e := range validateErrs {
		if e.ActualTag() == "safe" {
			slog.Warn("suspicious input rejected",
				slog.String("field", e.Field()))
		}
	}

	response.WriteJSON(w, http.StatusBadRequest,
		response.ValidationError(validateErrs))
}

// writeCalculationFailure maps engine errors to wire responses: a
// calculation breakdown is the client's 400 (their inputs were
// pathological), anything else is a 500. Both bodies are generic.
func writeCalculationFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, calculator.ErrCalculation) {
		slog.Error("mortgage calculation failed",
			slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(response.MsgCalculationError))
		return
	}

	slog.Error("unexpected calculation error",
		slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError,
		response.GeneralError(response.MsgUnexpectedError))
}

// cacheKey derives the memo key from the validated loan. Validated
// decimals print canonically, so equal loans share a key.
func cacheKey(loan types.LoanRequest) string {
	return fmt.Sprintf("mortgage:calc:%s:%s:%d",
		loan.Principal, loan.AnnualRate, loan.Years)
}

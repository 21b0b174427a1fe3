package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/export"
	"leadgen-engine/internal/input"
	"leadgen-engine/internal/ratelimit"
)

const (
	MsgRateLimited = "Too many requests. Please wait a minute before trying again."
	MsgInternal    = "An error occurred while generating leads. Please try again."

	maxLeadBodyBytes   = 64 << 10
	maxExportBodyBytes = 4 << 20
)

type LeadsHandler struct {
	Runner    LeadRunner
	Limiter   ratelimit.Limiter
	Validator *input.Validator
	Hub       *events.Hub
	Now       func() time.Time
}

type leadsResponse struct {
	Leads []domain.Lead `json:"leads"`
	Error string        `json:"error,omitempty"`
}

func (h LeadsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func setRateHeaders(w http.ResponseWriter, st ratelimit.Status) {
	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(st.Limit))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(st.Remaining))
	w.Header().Set(HeaderRateLimitReset, strconv.Itoa(st.ResetSeconds()))
}

// Generate handles POST /api/generate-leads. The rate limit is checked
// before the body is read; a limiter backend error lets the request
// through.
func (h LeadsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFrom(r.Context())
	client := ClientID(r)

	st, err := h.Limiter.Check(r.Context(), client)
	if err != nil {
		log.Printf("level=warn msg=\"rate limiter unavailable\" request_id=%s client=%s err=%v", reqID, client, err)
	} else {
		setRateHeaders(w, st)
		if st.Limited {
			w.Header().Set("Retry-After", strconv.Itoa(st.ResetSeconds()))
			WriteError(w, r, http.StatusTooManyRequests, "rate_limited", MsgRateLimited)
			return
		}
	}

	req, err := h.Validator.Parse(http.MaxBytesReader(w, r.Body, maxLeadBodyBytes))
	if err != nil {
		var ie *input.Error
		if errors.As(err, &ie) {
			WriteError(w, r, http.StatusBadRequest, "invalid_input", ie.Message)
			return
		}
		log.Printf("level=error msg=\"parse lead request\" request_id=%s err=%v", reqID, err)
		WriteError(w, r, http.StatusInternalServerError, "internal_error", MsgInternal)
		return
	}

	start := h.now()
	h.publish(reqID, events.TypeRunStarted, events.RunStarted{
		Industry:   req.Industry,
		Location:   req.Location,
		MaxResults: req.MaxResults,
	})

	res, err := h.Runner.Run(r.Context(), req)
	took := h.now().Sub(start).Milliseconds()
	if err != nil {
		log.Printf("level=error msg=\"lead run failed\" request_id=%s industry=%q location=%q err=%v", reqID, req.Industry, req.Location, err)
		h.publish(reqID, events.TypeRunFinished, events.RunFinished{Failed: true, DurationMs: took})
		WriteError(w, r, http.StatusInternalServerError, "internal_error", MsgInternal)
		return
	}

	h.publish(reqID, events.TypeRunFinished, events.RunFinished{
		Leads:      len(res.Leads),
		Candidates: res.Candidates,
		Synthetic:  res.Synthetic,
		Reason:     res.Reason,
		TimedOut:   res.TimedOut,
		DurationMs: took,
	})

	leads := res.Leads
	if leads == nil {
		leads = []domain.Lead{}
	}
	WriteJSON(w, http.StatusOK, leadsResponse{Leads: leads, Error: res.Reason})
}

func (h LeadsHandler) publish(reqID, typ string, data any) {
	if h.Hub == nil {
		return
	}
	h.Hub.Publish(events.MakeEvent(reqID, typ, data))
}

// Export handles POST /api/leads/export?format=csv|xlsx with a
// {leads: [...]} body, typically a previous generate-leads response.
func (h LeadsHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_format", err.Error())
		return
	}

	var body struct {
		Leads []domain.Lead `json:"leads"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExportBodyBytes)).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "Request body must be a JSON object with a leads array.")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(h.now())))
	if err := export.Write(w, format, body.Leads); err != nil {
		// headers are gone; nothing useful left to send
		log.Printf("level=error msg=\"export\" request_id=%s format=%s err=%v", RequestIDFrom(r.Context()), format, err)
	}
}

package httpapi

// scheduleRequest is the PUT /v1/schedules/{name} request body.
type scheduleRequest struct {
	Cron        string `json:"cron"`
	Mode        string `json:"mode"`
	IsPeriod    bool   `json:"is_period"`
	Description string `json:"description,omitempty"`
}

// scheduleResponse is the GET /v1/schedules/{name} response body.
type scheduleResponse struct {
	Name        string `json:"name"`
	Cron        string `json:"cron"`
	Mode        string `json:"mode"`
	IsPeriod    bool   `json:"is_period"`
	Description string `json:"description,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// pointRequest is the POST .../next and .../prev request body.
type pointRequest struct {
	At      string `json:"at"`
	Leap    int    `json:"leap"`
	PassNow bool   `json:"pass_now"`
}

// pointResponse answers a next/prev/start/end query.
type pointResponse struct {
	At string `json:"at"`
}

// containsResponse answers a contains/covers query.
type containsResponse struct {
	Contains bool `json:"contains"`
}

// errorResponse is the body written alongside any non-2xx status.
type errorResponse struct {
	Error string `json:"error"`
}

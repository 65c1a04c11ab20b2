// Copyright © 2021 Luther Systems, Ltd. All right reserved.

// Package auditlog archives schedule-API requests: each request's path,
// method, query, JSON body and audit attribution are captured and written
// asynchronously to a storage backend.
package auditlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v4"
	humanize "github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/caldros/cronweave/midware"
	"github.com/caldros/cronweave/svc"
	"github.com/caldros/cronweave/txctx"
)

var defaultTimeout = 1 * time.Minute

type archiver struct {
	logBase      *logrus.Entry
	traceHeader  string
	ignoredPaths map[string]bool
	backend      backend
}

var _ midware.Middleware = &archiver{}

type backend interface {
	Write(ctx context.Context, reqID string, content []byte)
	Done()
}

type objectData struct {
	Path   string                  `json:"path"`
	Query  string                  `json:"query"`
	Method string                  `json:"method"`
	Body   *json.RawMessage        `json:"body"`
	Claims *jwtgo.RegisteredClaims `json:"claims"`
}

// Wrap implements midware.Middleware.
func (a *archiver) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ignoredPath(a.ignoredPaths, r.URL.Path) {
			if err := a.put(r); err != nil {
				a.log(r).WithError(err).Error("auditlog archiver put failed")
			}
		}
		next.ServeHTTP(w, r)
	})
}

func copyBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return []byte{}, nil
	}
	bodyContent, err := io.ReadAll(r.Body)
	if err == nil {
		_ = r.Body.Close()
	}
	r.Body = io.NopCloser(bytes.NewBuffer(bodyContent))
	return bodyContent, err
}

func hasJSONBody(r *http.Request, bodyContent *[]byte) (bool, error) {
	if len(*bodyContent) == 0 {
		return false, nil
	}
	contentType := r.Header.Get("Content-Type")
	mType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false, fmt.Errorf("unable to parse Content-Type header %q: %w", contentType, err)
	}
	if mType != "application/json" {
		return false, fmt.Errorf("unable to handle Content-Type: %s", contentType)
	}
	return true, nil
}

func requestCookie(request *http.Request, name string) *http.Cookie {
	for _, cookie := range request.Cookies() {
		if strings.EqualFold(cookie.Name, name) {
			return cookie
		}
	}
	return nil
}

// put archives the schedule-API request r: its path, method, query, body
// (when JSON) and any bearer-token claims found in an "authorization"
// cookie, parsed unverified purely for audit attribution.
func (a *archiver) put(r *http.Request) error {
	reqID := a.reqID(r)
	if reqID == "" {
		return errors.New("auditlog archiver failed to get request id")
	}
	bodyContent, err := copyBody(r)
	if err != nil {
		return err
	}
	bodyIsJSON, err := hasJSONBody(r, &bodyContent)
	if err != nil {
		a.log(r).WithError(err).Debug("auditlog archiver unable to read body")
	}
	var reqClaims *jwtgo.RegisteredClaims
	if cookie := requestCookie(r, "authorization"); cookie != nil {
		parser := &jwtgo.Parser{}
		token, _, err := parser.ParseUnverified(cookie.Value, &jwtgo.RegisteredClaims{})
		if err == nil {
			reqClaims, _ = token.Claims.(*jwtgo.RegisteredClaims)
		}
	}
	if reqClaims != nil && reqClaims.Subject != "" {
		txctx.SetAuthDetails(r.Context(), txctx.AuthDetails{Subject: reqClaims.Subject})
	}
	content := objectData{
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Method: r.Method,
		Claims: reqClaims,
	}
	if bodyIsJSON {
		body := json.RawMessage(bodyContent)
		content.Body = &body
	}
	jsonContent, err := json.Marshal(content)
	if err != nil {
		return err
	}
	a.log(r).WithField("size", humanize.Bytes(uint64(len(jsonContent)))).Debug("auditlog archiver writing request")
	// The write continues in a goroutine after this handler returns, so it
	// must not inherit r.Context()'s cancellation once the response is sent.
	a.backend.Write(svc.WithoutCancel(r.Context()), reqID, jsonContent)
	return nil
}

func (a *archiver) logReqID(reqID string) *logrus.Entry {
	return a.logBase.WithField("req_id", reqID)
}

func (a *archiver) log(r *http.Request) *logrus.Entry {
	return a.logReqID(a.reqID(r))
}

func (a *archiver) reqID(r *http.Request) string {
	return r.Header.Get(a.traceHeader)
}

func ignoredPath(ignoredPaths map[string]bool, path string) bool {
	_, ignored := ignoredPaths[path]
	return ignored
}

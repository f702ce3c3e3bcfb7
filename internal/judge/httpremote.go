package judge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Hrhcoolshegs/verdict/internal/model"
)

// HTTPRemote talks to the verdict API over HTTP.
type HTTPRemote struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRemote builds a Remote against the given base URL, e.g.
// "http://localhost:3000".
func NewHTTPRemote(baseURL string) *HTTPRemote {
	return &HTTPRemote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *HTTPRemote) ListMovies(ctx context.Context) ([]model.MovieResponse, error) {
	var movies []model.MovieResponse
	if err := r.get(ctx, "/api/movies", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *HTTPRemote) MovieByID(ctx context.Context, id int64) (*model.MovieResponse, error) {
	var movie model.MovieResponse
	if err := r.get(ctx, fmt.Sprintf("/api/movies/%d", id), &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *HTTPRemote) SearchMovies(ctx context.Context, query string) ([]model.MovieResponse, error) {
	var movies []model.MovieResponse
	path := "/api/movies/search?q=" + url.QueryEscape(query)
	if err := r.get(ctx, path, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *HTTPRemote) RandomMovie(ctx context.Context) (*model.MovieResponse, error) {
	var movie model.MovieResponse
	if err := r.get(ctx, "/api/movies/random", &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *HTTPRemote) RecordVerdict(ctx context.Context, req model.VerdictRequest) (*model.VerdictResponse, error) {
	var resp model.VerdictResponse
	if err := r.post(ctx, "/api/verdicts", req, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *HTTPRemote) HasVoted(ctx context.Context, movieID int64, identityKey string) (bool, error) {
	var out struct {
		HasVoted bool `json:"hasVoted"`
	}
	path := fmt.Sprintf("/api/verdicts/%d/voted?identityKey=%s", movieID, url.QueryEscape(identityKey))
	if err := r.get(ctx, path, &out); err != nil {
		return false, err
	}
	return out.HasVoted, nil
}

func (r *HTTPRemote) PriorVerdict(ctx context.Context, movieID int64, identityKey string) (*model.PriorVerdictResponse, error) {
	var prior model.PriorVerdictResponse
	path := fmt.Sprintf("/api/verdicts/%d?identityKey=%s", movieID, url.QueryEscape(identityKey))
	if err := r.get(ctx, path, &prior); err != nil {
		return nil, err
	}
	return &prior, nil
}

func (r *HTTPRemote) BeginVerification(ctx context.Context, email string) error {
	return r.post(ctx, "/api/auth/verify", model.BeginVerificationRequest{Email: email}, nil, nil)
}

func (r *HTTPRemote) ConfirmVerification(ctx context.Context, email, passcode string) (*model.SessionResponse, error) {
	var sess model.SessionResponse
	req := model.ConfirmVerificationRequest{Email: email, Passcode: passcode}
	if err := r.post(ctx, "/api/auth/confirm", req, nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *HTTPRemote) SignOut(ctx context.Context, token string) error {
	headers := map[string]string{"X-Session-Token": token}
	return r.post(ctx, "/api/auth/signout", struct{}{}, headers, nil)
}

func (r *HTTPRemote) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return err
	}
	return r.do(req, out)
}

func (r *HTTPRemote) post(ctx context.Context, path string, body any, headers map[string]string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return r.do(req, out)
}

func (r *HTTPRemote) do(req *http.Request, out any) error {
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// decodeError maps the API's {"error":{"code","message"}} envelope onto the
// client error taxonomy, keeping the server's message verbatim.
func decodeError(status int, raw []byte) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(raw, &envelope)

	switch envelope.Error.Code {
	case "ALREADY_JUDGED":
		return ErrAlreadyJudged
	case "NOT_FOUND":
		return ErrNotFound
	}
	return &RemoteError{Status: status, Code: envelope.Error.Code, Message: envelope.Error.Message}
}

package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventRegistry/internal/models"
	"eventRegistry/internal/storage"
)

const (
	tableEvents       = "events"
	tableApplications = "applications"
	tableUsers        = "users"
)

// Storage talks to the hosted data API (PostgREST dialect).
type Storage struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string, httpClient *http.Client) *Storage {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Storage{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/rest/v1",
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}
}

type eventRow struct {
	ID             string    `json:"id,omitempty"`
	Name           string    `json:"name"`
	StartDate      timestamp `json:"application_start_date"`
	EndDate        timestamp `json:"application_end_date"`
	ManuallyClosed bool      `json:"is_manually_closed"`
}

func (r eventRow) toModel() models.Event {
	return models.Event{
		ID:             r.ID,
		Name:           r.Name,
		StartDate:      r.StartDate.Time,
		EndDate:        r.EndDate.Time,
		ManuallyClosed: r.ManuallyClosed,
	}
}

func newEventRow(in storage.EventInput) eventRow {
	return eventRow{
		Name:           in.Name,
		StartDate:      timestamp{in.StartDate},
		EndDate:        timestamp{in.EndDate},
		ManuallyClosed: in.ManuallyClosed,
	}
}

type applicationRow struct {
	ID               string                   `json:"id"`
	EventID          string                   `json:"event_id"`
	ProjectName      string                   `json:"project_name"`
	University       string                   `json:"university"`
	GroupSize        int                      `json:"group_size"`
	Members          models.Members           `json:"full_names"`
	LeaderEmail      string                   `json:"group_leader_email"`
	LeaderPhone      string                   `json:"group_leader_phone"`
	ProblemStatement string                   `json:"problem_statement"`
	Solution         string                   `json:"solution"`
	Status           models.ApplicationStatus `json:"status"`
	CreatedAt        timestamp                `json:"created_at"`
}

func (r applicationRow) toModel() models.Application {
	return models.Application{
		ID:               r.ID,
		EventID:          r.EventID,
		ProjectName:      r.ProjectName,
		University:       r.University,
		GroupSize:        r.GroupSize,
		Members:          r.Members,
		LeaderEmail:      r.LeaderEmail,
		LeaderPhone:      r.LeaderPhone,
		ProblemStatement: r.ProblemStatement,
		Solution:         r.Solution,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt.Time,
	}
}

// applicationInsert mirrors the insert payload; full_names goes out as
// a JSON-encoded string and status is left to the column default.
type applicationInsert struct {
	EventID          string `json:"event_id"`
	ProjectName      string `json:"project_name"`
	University       string `json:"university"`
	GroupSize        int    `json:"group_size"`
	Members          string `json:"full_names"`
	LeaderEmail      string `json:"group_leader_email"`
	LeaderPhone      string `json:"group_leader_phone"`
	ProblemStatement string `json:"problem_statement"`
	Solution         string `json:"solution"`
}

type idRow struct {
	ID string `json:"id"`
}

func (s *Storage) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	const op = "storage.supabase.GetAllEvents"

	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "application_start_date.asc")

	var rows []eventRow
	if err := s.do(ctx, http.MethodGet, tableEvents, q, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events := make([]models.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.toModel())
	}

	return events, nil
}

func (s *Storage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	const op = "storage.supabase.GetEvent"

	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)

	var rows []eventRow
	if err := s.do(ctx, http.MethodGet, tableEvents, q, nil, "", &rows); err != nil {
		if isInvalidID(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	event := rows[0].toModel()

	return &event, nil
}

func (s *Storage) CreateEvent(ctx context.Context, in storage.EventInput) (string, error) {
	const op = "storage.supabase.CreateEvent"

	var rows []idRow
	err := s.do(ctx, http.MethodPost, tableEvents, nil, newEventRow(in), "return=representation", &rows)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%s: empty insert response", op)
	}

	return rows[0].ID, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, id string, in storage.EventInput) error {
	const op = "storage.supabase.UpdateEvent"

	q := url.Values{}
	q.Set("id", "eq."+id)

	var rows []idRow
	err := s.do(ctx, http.MethodPatch, tableEvents, q, newEventRow(in), "return=representation", &rows)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	return nil
}

func (s *Storage) DeleteEvent(ctx context.Context, id string) error {
	const op = "storage.supabase.DeleteEvent"

	q := url.Values{}
	q.Set("id", "eq."+id)

	var rows []idRow
	if err := s.do(ctx, http.MethodDelete, tableEvents, q, nil, "return=representation", &rows); err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	return nil
}

func (s *Storage) CreateApplication(ctx context.Context, in storage.ApplicationInput) (string, error) {
	const op = "storage.supabase.CreateApplication"

	members, err := in.Members.Encode()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	payload := []applicationInsert{{
		EventID:          in.EventID,
		ProjectName:      in.ProjectName,
		University:       in.University,
		GroupSize:        in.GroupSize(),
		Members:          members,
		LeaderEmail:      in.LeaderEmail,
		LeaderPhone:      in.LeaderPhone,
		ProblemStatement: in.ProblemStatement,
		Solution:         in.Solution,
	}}

	var rows []idRow
	if err = s.do(ctx, http.MethodPost, tableApplications, nil, payload, "return=representation", &rows); err != nil {
		if isInvalidID(err) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%s: empty insert response", op)
	}

	return rows[0].ID, nil
}

func (s *Storage) GetApplications(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error) {
	const op = "storage.supabase.GetApplications"

	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")
	if filter.EventID != "" {
		q.Set("event_id", "eq."+filter.EventID)
	}

	var rows []applicationRow
	if err := s.do(ctx, http.MethodGet, tableApplications, q, nil, "", &rows); err != nil {
		// a malformed event id matches nothing
		if isInvalidID(err) {
			return []models.Application{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	apps := make([]models.Application, 0, len(rows))
	for _, r := range rows {
		apps = append(apps, r.toModel())
	}

	return apps, nil
}

// UpdateApplicationStatus records a review decision. The update only
// matches rows that are still pending, so of two racing decisions the
// second one fails with storage.ErrStatusNotPending.
func (s *Storage) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	const op = "storage.supabase.UpdateApplicationStatus"

	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("status", "eq."+string(models.ApplicationPending))

	body := map[string]models.ApplicationStatus{"status": status}

	var rows []idRow
	if err := s.do(ctx, http.MethodPatch, tableApplications, q, body, "return=representation", &rows); err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrApplicationNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) > 0 {
		return nil
	}

	q = url.Values{}
	q.Set("select", "id")
	q.Set("id", "eq."+id)

	if err := s.do(ctx, http.MethodGet, tableApplications, q, nil, "", &rows); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrApplicationNotFound)
	}

	return fmt.Errorf("%s: %w", op, storage.ErrStatusNotPending)
}

// GetUserRole looks up the role of an authenticated user. The lookup runs
// with the user's own access token so row level security applies.
func (s *Storage) GetUserRole(ctx context.Context, userID, accessToken string) (string, error) {
	const op = "storage.supabase.GetUserRole"

	q := url.Values{}
	q.Set("select", "role")
	q.Set("id", "eq."+userID)

	var rows []struct {
		Role string `json:"role"`
	}

	ctx = withBearer(ctx, accessToken)
	if err := s.do(ctx, http.MethodGet, tableUsers, q, nil, "", &rows); err != nil {
		if isInvalidID(err) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	return rows[0].Role, nil
}

// pgInvalidText comes back when an id filter is not a valid uuid.
const pgInvalidText = "22P02"

func isInvalidID(err error) bool {
	var svcErr *storage.ServiceError
	return errors.As(err, &svcErr) && svcErr.Code == pgInvalidText
}

type bearerKey struct{}

func withBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}

	return context.WithValue(ctx, bearerKey{}, token)
}

func (s *Storage) do(ctx context.Context, method, table string, q url.Values, body any, prefer string, out any) error {
	endpoint := s.baseURL + "/" + table
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	bearer := s.apiKey
	if token, ok := ctx.Value(bearerKey{}).(string); ok {
		bearer = token
	}

	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return MapError(resp.StatusCode, payload)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}

	if err = json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

type errorResponse struct {
	Code             json.RawMessage `json:"code"`
	Message          string          `json:"message"`
	Msg              string          `json:"msg"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

// MapError turns a non-2xx backend reply into a *storage.ServiceError.
// Both the data API and the auth API error shapes are understood.
func MapError(statusCode int, payload []byte) error {
	svcErr := &storage.ServiceError{StatusCode: statusCode}

	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		svcErr.Message = strings.TrimSpace(string(payload))
		if svcErr.Message == "" {
			svcErr.Message = http.StatusText(statusCode)
		}
		return svcErr
	}

	// the data API sends string codes, the auth API numeric ones
	svcErr.Code = strings.Trim(string(parsed.Code), `"`)
	if svcErr.Code == "" || svcErr.Code == "null" {
		svcErr.Code = parsed.Error
	}

	for _, msg := range []string{parsed.Message, parsed.ErrorDescription, parsed.Msg, parsed.Error} {
		if msg != "" {
			svcErr.Message = msg
			break
		}
	}
	if svcErr.Message == "" {
		svcErr.Message = http.StatusText(statusCode)
	}

	return svcErr
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02",
}

// timestamp accepts the formats the backend emits for timestamptz,
// timestamp and date columns.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}

	return errors.New("unsupported timestamp format: " + raw)
}

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

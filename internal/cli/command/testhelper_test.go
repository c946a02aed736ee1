package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yndnr/linearcli/internal/core/domain"
	"github.com/yndnr/linearcli/internal/storage/cache"
)

var operationPattern = regexp.MustCompile(`^\s*(?:query|mutation)\s+(\w+)`)

// graphqlCall is one request received by the mock server.
type graphqlCall struct {
	Operation     string
	Variables     map[string]any
	Authorization string
}

// mockServer is a fake Linear GraphQL endpoint. Responses are queued per
// operation name; avatars are served under /avatars/.
type mockServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string][]http.HandlerFunc
	calls     []graphqlCall
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{responses: make(map[string][]http.HandlerFunc)}

	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", m.serveGraphQL)
	mux.HandleFunc("/avatars/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		fmt.Fprintf(w, "png:%s", r.URL.Path)
	})
	m.Server = httptest.NewServer(mux)
	t.Cleanup(m.Close)

	t.Setenv("LINEARCLI_ENDPOINT", m.URL+"/graphql")
	return m
}

func (m *mockServer) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	raw, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(raw, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	op := ""
	if match := operationPattern.FindStringSubmatch(body.Query); match != nil {
		op = match[1]
	}

	m.mu.Lock()
	m.calls = append(m.calls, graphqlCall{Operation: op, Variables: body.Variables, Authorization: r.Header.Get("Authorization")})
	queue := m.responses[op]
	var handler http.HandlerFunc
	if len(queue) > 0 {
		handler, m.responses[op] = queue[0], queue[1:]
	}
	m.mu.Unlock()

	if handler == nil {
		http.Error(w, "no response queued for "+op, http.StatusInternalServerError)
		return
	}
	handler(w, r)
}

// data queues successful responses whose data objects are the given JSON.
func (m *mockServer) data(op string, payloads ...string) *mockServer {
	for _, p := range payloads {
		p := p
		m.handle(op, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"data":%s}`, p)
		})
	}
	return m
}

func (m *mockServer) handle(op string, h http.HandlerFunc) *mockServer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[op] = append(m.responses[op], h)
	return m
}

func (m *mockServer) callsFor(op string) []graphqlCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []graphqlCall
	for _, c := range m.calls {
		if c.Operation == op {
			out = append(out, c)
		}
	}
	return out
}

func (m *mockServer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// runResult captures one CLI invocation.
type runResult struct {
	Stdout string
	Stderr string
	Err    error
}

// runApp runs the CLI against home with the given arguments.
func runApp(t *testing.T, home string, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	argv := append([]string{"linearcli", "--home", home}, args...)
	err := app.RunContext(context.Background(), argv)
	return runResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// seedCache writes cfg as the cache of home.
func seedCache(t *testing.T, home string, cfg *domain.Config) {
	t.Helper()
	require.NoError(t, cache.NewStore(home).Save(cfg))
}

func loadCache(t *testing.T, home string) *domain.Config {
	t.Helper()
	cfg, err := cache.NewStore(home).Load()
	require.NoError(t, err)
	return cfg
}

// syncedConfig is a cache as left by a full sync.
func syncedConfig() *domain.Config {
	team := "T1"
	avatar := "https://example.com/ada.png"
	projects := []domain.Project{
		{ID: "P1", Name: "Alpha", SlugID: "alpha-1", Teams: []domain.TeamRef{{ID: "T1"}}},
		{ID: "P2", Name: "Beta", SlugID: "beta-2", Teams: []domain.TeamRef{{ID: "T2"}}},
	}
	teamsToProjects, byID := domain.BuildProjectIndexes(projects)
	states := []domain.WorkflowState{
		{ID: "S1", Name: "Todo", Team: domain.TeamRef{ID: "T1"}},
		{ID: "S2", Name: "Done", Team: domain.TeamRef{ID: "T1"}},
		{ID: "S3", Name: "Backlog", Team: domain.TeamRef{ID: "T2"}},
	}
	return &domain.Config{
		APIKey:          "lin_api_testkey123456",
		DefaultTeam:     &team,
		Me:              "U1",
		Teams:           []domain.Team{{ID: "T1", Name: "Eng"}, {ID: "T2", Name: "Ops"}},
		Users:           []domain.User{{ID: "U1", Name: "Ada", AvatarURL: &avatar}, {ID: "U2", Name: "Bob"}},
		Projects:        projects,
		States:          states,
		TeamsToProjects: teamsToProjects,
		ProjectsByID:    byID,
		StatesByTeam:    domain.BuildStatesByTeam(states),
	}
}

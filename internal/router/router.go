package router

import (
	"net/http"

	"github.com/lifeconnect/backend/internal/auth"
	"github.com/lifeconnect/backend/internal/handlers"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth    *auth.Handler
	Profile *handlers.ProfileHandler
	Project *handlers.ProjectHandler
	Match   *handlers.MatchHandler
	Income  *handlers.IncomeHandler
	Plan    *handlers.PlanHandler
	City    *handlers.CityHandler
}

// New returns an http.Handler serving the API under /api/v1. authMW wraps the
// routes that require an authenticated caller; Plan may be nil when the
// planner is not configured, in which case its route is not registered.
func New(h Handlers, authMW func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()
	base := "/api/v1"

	mux.HandleFunc("POST "+base+"/auth/register", h.Auth.Register)
	mux.HandleFunc("POST "+base+"/auth/login", h.Auth.Login)

	authed := func(fn http.HandlerFunc) http.Handler { return authMW(fn) }

	mux.Handle("GET "+base+"/profiles/me", authed(h.Profile.GetMe))
	mux.Handle("PATCH "+base+"/profiles/me", authed(h.Profile.UpdateMe))

	mux.Handle("POST "+base+"/projects", authed(h.Project.CreateProject))
	mux.HandleFunc("GET "+base+"/projects/{id}", h.Project.GetProject)
	mux.HandleFunc("GET "+base+"/projects/{id}/members", h.Project.ListMembers)
	mux.Handle("POST "+base+"/projects/{id}/members", authed(h.Project.AddMember))
	mux.HandleFunc("GET "+base+"/projects/{id}/transactions", h.Project.ListProjectTransactions)
	mux.Handle("GET "+base+"/transactions", authed(h.Project.ListUserTransactions))

	// GET /projects serves the public active list, or the caller's own with
	// ?mine=true; auth is resolved inside the handler for the latter.
	mux.Handle("GET "+base+"/projects", listProjectsRoute(h.Project, authMW))

	mux.Handle("GET "+base+"/matches", authed(h.Match.GetMatches))
	mux.Handle("POST "+base+"/projects/{id}/income", authed(h.Income.ProcessIncome))
	if h.Plan != nil {
		mux.Handle("POST "+base+"/projects/{id}/plan", authed(h.Plan.GeneratePlan))
	}

	mux.HandleFunc("GET "+base+"/funds", h.City.ListFunds)
	mux.HandleFunc("GET "+base+"/city-projects", h.City.ListCityProjects)
	mux.Handle("POST "+base+"/city-projects/{id}/vote", authed(h.City.CastVote))
	mux.Handle("GET "+base+"/votes", authed(h.City.ListMyVotes))

	return mux
}

func listProjectsRoute(project *handlers.ProjectHandler, authMW func(http.Handler) http.Handler) http.Handler {
	authedList := authMW(http.HandlerFunc(project.ListProjects))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("mine") == "true" {
			authedList.ServeHTTP(w, r)
			return
		}
		project.ListProjects(w, r)
	})
}

package serverapp

import (
	"embed"
	"html/template"
	"net/http"
	"sort"
	"time"

	"pennypet/internal/gamestate"
)

//go:embed templates/status.html
var statusTemplatesFS embed.FS

var statusTmpl = template.Must(
	template.New("status.html").
		Funcs(template.FuncMap{
			"since": func(t time.Time) string { return time.Since(t).Round(time.Second).String() },
		}).
		ParseFS(statusTemplatesFS, "templates/status.html"),
)

type statusNeed struct {
	Name  string
	Value int
}

type statusAge struct {
	Pet  string
	Days int
}

type statusPageData struct {
	BootAt     time.Time
	Pet        string
	Mood       string
	Money      int
	DaysPlayed int
	Badges     int
	Needs      []statusNeed
	Ages       []statusAge
	Ledger     int
	Routes     []RouteDoc
}

func RegisterStatus(mux *http.ServeMux, rr *RouteRegistry, a *App) {
	// JSON list (handy for tooling)
	mux.HandleFunc("GET /_/status/routes.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rr.List())
	})

	// HTML
	mux.HandleFunc("GET /_/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		st := a.Store.GetState()
		data := statusPageData{
			BootAt:     a.BootNow,
			Pet:        st.AnimalID,
			Mood:       string(gamestate.MoodFor(st.Needs)),
			Money:      st.Money,
			DaysPlayed: st.DaysPlayed,
			Badges:     earnedBadges(st.Badges),
			Needs:      needRows(st.Needs),
			Ages:       ageRows(a.Store.Ages()),
			Ledger:     len(st.Transactions),
			Routes:     rr.List(),
		}

		if err := statusTmpl.Execute(w, data); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
	})
}

func earnedBadges(badges map[string]bool) int {
	n := 0
	for _, got := range badges {
		if got {
			n++
		}
	}
	return n
}

func needRows(needs map[gamestate.Need]int) []statusNeed {
	out := make([]statusNeed, 0, len(needs))
	for k, v := range needs {
		out = append(out, statusNeed{Name: string(k), Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func ageRows(ages gamestate.PetAges) []statusAge {
	out := make([]statusAge, 0, len(ages))
	for k, v := range ages {
		out = append(out, statusAge{Pet: k, Days: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pet < out[j].Pet })
	return out
}

package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"pennypet/internal/catalog"
	"pennypet/internal/config"
	"pennypet/internal/game"
	"pennypet/internal/gamestate"
	"pennypet/internal/httpmw"
	"pennypet/internal/telemetry"
)

type Options struct {
	Config *config.Config
	// Balance tunes the decay and reward pacing. The zero value means
	// config.Default().
	Balance config.Balance
	// Catalog lists the shop. Nil means catalog.Default().
	Catalog *catalog.Catalog
	// Persister backs the save blobs. Nil builds a file store under
	// Config.Data.Dir.
	Persister  gamestate.Persister
	Telemetry  telemetry.Repository
	Clock      game.Clock
	CORSOrigin string
	Logger     *log.Logger
}

// App holds the long-lived pieces the handlers and the decay loop share.
type App struct {
	Config    *config.Config
	Balance   config.Balance
	Catalog   *catalog.Catalog
	Store     *gamestate.Store
	Engine    game.Engine
	Telemetry telemetry.Repository
	Persister gamestate.Persister
	Logger    *log.Logger
	BootNow   time.Time

	corsOrigin   string
	stopRecorder func()
}

func NewApp(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}
	if opts.Balance == (config.Balance{}) {
		opts.Balance = config.Default()
	}
	if opts.Catalog == nil {
		def := catalog.Default()
		opts.Catalog = &def
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewMemoryRepository()
	}
	if opts.Persister == nil {
		fs, err := gamestate.NewFileStore(opts.Config.Data.Dir)
		if err != nil {
			return nil, err
		}
		opts.Persister = fs
	}

	store := gamestate.New(gamestate.Options{
		Persister: opts.Persister,
		Logger:    opts.Logger,
		Now:       game.NowFunc(opts.Clock),
	})

	recorder := telemetry.NewRecorder(opts.Telemetry, opts.Logger)
	stop := recorder.Attach(store)

	app := &App{
		Config:  opts.Config,
		Balance: opts.Balance,
		Catalog: opts.Catalog,
		Store:   store,
		Engine: game.Engine{
			Store:     store,
			Balance:   opts.Balance,
			Telemetry: opts.Telemetry,
			Logger:    opts.Logger,
		},
		Telemetry:    opts.Telemetry,
		Persister:    opts.Persister,
		Logger:       opts.Logger,
		BootNow:      opts.Clock.Now(),
		corsOrigin:   opts.CORSOrigin,
		stopRecorder: stop,
	}
	return app, nil
}

// Close detaches the telemetry recorder. The store itself has nothing to shut
// down; persistence happens inside each commit.
func (a *App) Close() {
	if a.stopRecorder != nil {
		a.stopRecorder()
	}
}

// Handler builds the full route table wrapped in the middleware chain.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	rr := &RouteRegistry{}

	stateHandler := gamestate.NewHandler(a.Store)
	shopHandler := catalog.NewHandler(a.Catalog, a.Store)
	activityHandler := game.NewHandler(a.Engine)
	telemetryHandler := telemetry.NewHandler(a.Telemetry)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "pennypet",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if a.Persister != nil {
			if _, _, err := a.Persister.Load(gamestate.KeyGameState); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{
					"ok":    false,
					"error": "save storage unavailable",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "pennypet",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	Handle(mux, rr, "GET /api/state", "Full game snapshot with mood and ages", "", stateHandler.State)
	Handle(mux, rr, "GET /api/pets/ages", "Age in days per pet", "", stateHandler.PetAges)
	Handle(mux, rr, "POST /api/pets/select", "Switch the active pet", `{"animalId":"cat"}`, shopHandler.SelectPet)
	Handle(mux, rr, "POST /api/pets/purchase", "Buy a pet from the catalog", `{"animalId":"dragon"}`, shopHandler.PurchasePet)
	Handle(mux, rr, "POST /api/accessories/add", "Grant owned accessories", `{"accessoryId":"hat","count":1}`, stateHandler.AddAccessory)
	Handle(mux, rr, "POST /api/accessories/equip", "Equip or unequip an owned accessory", `{"accessoryId":"hat","equipped":true}`, stateHandler.EquipAccessory)
	Handle(mux, rr, "POST /api/accessories/purchase", "Buy an accessory from the catalog", `{"accessoryId":"bow"}`, shopHandler.PurchaseAccessory)
	Handle(mux, rr, "POST /api/needs/set", "Set one need gauge", `{"need":"hunger","value":100}`, stateHandler.SetNeed)
	Handle(mux, rr, "POST /api/needs/bump", "Adjust one need gauge", `{"need":"fun","delta":10}`, stateHandler.BumpNeed)
	Handle(mux, rr, "POST /api/money/delta", "Apply income or spending", `{"delta":25,"category":"chores","note":"washed dishes"}`, stateHandler.MoneyDelta)
	Handle(mux, rr, "GET /api/transactions", "List ledger entries, newest first", "", stateHandler.TransactionsRoot)
	Handle(mux, rr, "POST /api/transactions", "Record a ledger entry", `{"type":"income","amount":10,"category":"allowance"}`, stateHandler.TransactionsRoot)
	Handle(mux, rr, "GET /api/catalog", "Shop listing with prices", "", shopHandler.Catalog)
	Handle(mux, rr, "POST /api/activity/complete", "Claim an activity cycle reward", `{"activity":"budget_quiz"}`, activityHandler.CompleteActivity)
	Handle(mux, rr, "GET /api/telemetry/stats", "Aggregated play stats", "", telemetryHandler.Stats)
	Handle(mux, rr, "GET /api/telemetry/events", "Raw telemetry events", "", telemetryHandler.Events)

	mux.HandleFunc("GET /api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{
			"config":  a.Config,
			"balance": a.Balance,
		}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})

	RegisterStatus(mux, rr, a)

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(a.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(a.Logger),
		httpmw.WithCORS(a.corsOrigin),
	)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

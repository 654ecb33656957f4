package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"kennel-manager/internal/adapters/auth/jwtauth"
	mem "kennel-manager/internal/adapters/storage/memory"
	pg "kennel-manager/internal/adapters/storage/postgres"
	"kennel-manager/internal/domain/authn"
	"kennel-manager/internal/domain/bookings"
	"kennel-manager/internal/domain/customers"
	"kennel-manager/internal/domain/dogs"
	"kennel-manager/internal/domain/kennels"
	"kennel-manager/internal/domain/policy"
	"kennel-manager/internal/domain/users"
	"kennel-manager/internal/middleware"
	"kennel-manager/internal/platform/logger"
	"kennel-manager/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	// Issuer/Verifier: si vienen nil se crea un firmador HMAC con secret
	// de desarrollo (solo para dev/tests, nunca producción).
	Issuer   auth.TokenIssuer
	Verifier auth.TokenVerifier

	// TokenTTL 0 => default 60 minutos.
	TokenTTL time.Duration

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Log nil => logger desde env.
	Log logger.Logger

	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(middleware.RequestLogger(log))

	issuer, verifier := opts.Issuer, opts.Verifier
	if issuer == nil && verifier == nil {
		signer, err := jwtauth.New(jwtauth.Config{
			Secret:   "dev-insecure-secret",
			Issuer:   "kennel-manager",
			Audience: "kennel-manager-api",
		})
		if err == nil {
			issuer, verifier = signer, signer
			log.Warn("using insecure dev token secret", nil)
		}
	}

	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		usersRepo     users.Repository
		customersRepo customers.Repository
		dogsRepo      dogs.Repository
		kennelsRepo   kennels.Repository
		bookingsRepo  bookings.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Error("postgres open failed, falling back to memory", map[string]any{"err": err.Error()})
			}
		}
	}

	if db != nil {
		usersRepo = pg.NewUsersRepo(db)
		customersRepo = pg.NewCustomersRepo(db)
		dogsRepo = pg.NewDogsRepo(db)
		kennelsRepo = pg.NewKennelsRepo(db)
		bookingsRepo = pg.NewBookingsRepo(db)
	} else {
		usersRepo = mem.NewUsersRepo()
		customersRepo = mem.NewCustomersRepo()
		dogsRepo = mem.NewDogsRepo()
		kennelsRepo = mem.NewKennelsRepo()
		bookingsRepo = mem.NewBookingsRepo()
	}

	// Services por módulo. El orden importa: customers necesita contar
	// perros y dogs valida referencias a customers.
	customersSvc := customers.NewService(customersRepo, dogsRepo)
	dogsSvc := dogs.NewService(dogsRepo, customersSvc)
	kennelsSvc := kennels.NewService(kennelsRepo)
	bookingsSvc := bookings.NewService(bookingsRepo, dogsSvc, kennelsSvc)
	usersSvc := users.NewService(usersRepo, customersSvc)
	authnSvc := authn.NewService(usersSvc, customersSvc, issuer, opts.TokenTTL)

	// Resolución de scope: User -> Customer -> Dogs -> Bookings,
	// una vez por request.
	scopes := policy.NewScopeResolver(customersSvc, dogsSvc, bookingsSvc)

	// Rutas por módulo
	authn.RegisterRoutes(r, authnSvc)
	users.RegisterRoutes(r, usersSvc)
	customers.RegisterRoutes(r, customersSvc)
	dogs.RegisterRoutes(r, dogsSvc, scopes)
	kennels.RegisterRoutes(r, kennelsSvc)
	bookings.RegisterRoutes(r, bookingsSvc, scopes)

	return r
}

package browser_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"chamaweb/internal/adapters/api"
	"chamaweb/internal/adapters/email"
	web "chamaweb/internal/adapters/http"
	"chamaweb/internal/adapters/http/middleware"
	"chamaweb/internal/adapters/storage"
	sessionStore "chamaweb/internal/adapters/storage/session"
	"chamaweb/internal/config"
)

// fakeUser is an account row inside the fake chama API.
type fakeUser struct {
	ID       int
	First    string
	Last     string
	Email    string
	Phone    string
	Password string
	Role     string
	Verified bool
}

// fakeChamaAPI is an in-memory stand-in for the external chama REST API.
// Every request increments Requests so tests can assert that invalid
// forms never reach the network.
type fakeChamaAPI struct {
	mu       sync.Mutex
	users    map[int]*fakeUser
	tokens   map[string]int // bearer token -> user ID
	loans    map[int]map[string]any
	payments map[int]map[string]any // payment ID -> payment
	shares   map[int]map[string]any // member ID -> record
	nextID   int
	Requests int
}

func newFakeChamaAPI() *fakeChamaAPI {
	f := &fakeChamaAPI{
		users:    make(map[int]*fakeUser),
		tokens:   make(map[string]int),
		loans:    make(map[int]map[string]any),
		payments: make(map[int]map[string]any),
		shares:   make(map[int]map[string]any),
		nextID:   1,
	}
	f.addUser(&fakeUser{First: "Grace", Last: "Admin", Email: "admin@test.com", Phone: "0700000001", Password: "AdminPass1!", Role: "admin", Verified: true})
	f.addUser(&fakeUser{First: "Amina", Last: "Member", Email: "member@test.com", Phone: "0700000002", Password: "MemberPass1!", Role: "member", Verified: true})
	f.addUser(&fakeUser{First: "Brian", Last: "Pending", Email: "pending@test.com", Phone: "0700000003", Password: "PendingPass1!", Role: "member", Verified: false})
	return f
}

func (f *fakeChamaAPI) addUser(u *fakeUser) *fakeUser {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return u
}

func (f *fakeChamaAPI) userByEmail(email string) *fakeUser {
	for _, u := range f.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (f *fakeChamaAPI) userByToken(r *http.Request) *fakeUser {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return nil
	}
	id, ok := f.tokens[token]
	if !ok {
		return nil
	}
	return f.users[id]
}

func (f *fakeChamaAPI) profileJSON(u *fakeUser) map[string]any {
	return map[string]any{
		"memberId":       u.ID,
		"firstname":      u.First,
		"lastname":       u.Last,
		"email":          u.Email,
		"phoneno":        u.Phone,
		"role":           u.Role,
		"email_verified": u.Verified,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (f *fakeChamaAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests++

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && path == "/auth/register":
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if f.userByEmail(body["email"]) != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"msg": "email already registered"})
			return
		}
		f.addUser(&fakeUser{
			First: body["firstname"], Last: body["lastname"],
			Email: body["email"], Phone: body["phoneno"],
			Password: body["password"], Role: "member",
		})
		writeJSON(w, http.StatusCreated, map[string]string{"msg": "Registered. Please verify your email."})

	case r.Method == http.MethodPost && path == "/auth/login":
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		u := f.userByEmail(body["email"])
		if u == nil || u.Password != body["password"] {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Invalid email or password"})
			return
		}
		token := fmt.Sprintf("tok-%d-%d", u.ID, len(f.tokens))
		f.tokens[token] = u.ID
		writeJSON(w, http.StatusOK, map[string]string{"access_token": token})

	case r.Method == http.MethodGet && path == "/me":
		u := f.userByToken(r)
		if u == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "missing token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": f.profileJSON(u)})

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/auth/verify-email/"):
		token := strings.TrimPrefix(path, "/auth/verify-email/")
		for _, u := range f.users {
			if token == fmt.Sprintf("verify-%d", u.ID) {
				u.Verified = true
				writeJSON(w, http.StatusOK, map[string]string{"msg": "Email verified successfully"})
				return
			}
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "Invalid or expired verification token"})

	case r.Method == http.MethodPost && path == "/auth/request-password-reset":
		writeJSON(w, http.StatusOK, map[string]string{"msg": "If that email exists, a reset link has been sent."})

	case r.Method == http.MethodPost && path == "/auth/reset-password":
		writeJSON(w, http.StatusOK, map[string]string{"msg": "Password reset successful."})

	case r.Method == http.MethodGet && path == "/shares":
		u := f.authed(w, r)
		if u == nil {
			return
		}
		rec, ok := f.shares[u.ID]
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"shares": nil})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"shares": rec})

	case r.Method == http.MethodGet && path == "/loans/me":
		u := f.authed(w, r)
		if u == nil {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"loans": f.memberLoans(u.ID)})

	case r.Method == http.MethodPost && path == "/loans/apply":
		u := f.authed(w, r)
		if u == nil {
			return
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		body["memberId"] = u.ID
		f.loans[u.ID] = body
		writeJSON(w, http.StatusCreated, map[string]string{"msg": "Loan application submitted"})

	case r.Method == http.MethodGet && path == "/payments/me":
		u := f.authed(w, r)
		if u == nil {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"payments": f.memberPayments(u.ID)})

	case r.Method == http.MethodPost && path == "/payments":
		u := f.authed(w, r)
		if u == nil {
			return
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		id := len(f.payments) + 1
		body["paymentId"] = id
		body["memberId"] = u.ID
		f.payments[id] = body
		writeJSON(w, http.StatusCreated, map[string]string{"msg": "Payment recorded"})

	case r.Method == http.MethodGet && path == "/loans":
		if f.admin(w, r) == nil {
			return
		}
		all := []map[string]any{}
		for _, l := range f.loans {
			all = append(all, l)
		}
		writeJSON(w, http.StatusOK, map[string]any{"loans": all})

	case strings.HasPrefix(path, "/loans/"):
		if f.admin(w, r) == nil {
			return
		}
		memberID, _ := strconv.Atoi(strings.TrimPrefix(path, "/loans/"))
		switch r.Method {
		case http.MethodPut:
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			body["memberId"] = memberID
			f.loans[memberID] = body
			writeJSON(w, http.StatusOK, map[string]string{"msg": "Loan updated"})
		case http.MethodDelete:
			delete(f.loans, memberID)
			writeJSON(w, http.StatusOK, map[string]string{"msg": "Loan deleted"})
		}

	case r.Method == http.MethodGet && path == "/payments/all":
		if f.admin(w, r) == nil {
			return
		}
		all := []map[string]any{}
		for _, p := range f.payments {
			all = append(all, p)
		}
		writeJSON(w, http.StatusOK, map[string]any{"payments": all})

	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/payments/"):
		if f.admin(w, r) == nil {
			return
		}
		id, _ := strconv.Atoi(strings.TrimPrefix(path, "/payments/"))
		delete(f.payments, id)
		writeJSON(w, http.StatusOK, map[string]string{"msg": "Payment deleted"})

	case r.Method == http.MethodGet && (path == "/users" || path == "/admin/users"):
		if f.admin(w, r) == nil {
			return
		}
		role := r.URL.Query().Get("role")
		users := []map[string]any{}
		for _, u := range f.users {
			if role != "" && u.Role != role {
				continue
			}
			users = append(users, f.profileJSON(u))
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": users})

	case r.Method == http.MethodPut && strings.HasSuffix(path, "/role"):
		if f.admin(w, r) == nil {
			return
		}
		id, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(path, "/users/"), "/role"))
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if u, ok := f.users[id]; ok {
			u.Role = body["role"]
		}
		writeJSON(w, http.StatusOK, map[string]string{"msg": "Role updated"})

	case r.Method == http.MethodDelete && strings.HasSuffix(path, "/delete") && strings.HasPrefix(path, "/users/"):
		if f.admin(w, r) == nil {
			return
		}
		id, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(path, "/users/"), "/delete"))
		delete(f.users, id)
		writeJSON(w, http.StatusOK, map[string]string{"msg": "User deleted"})

	case r.Method == http.MethodGet && path == "/admin/shares":
		if f.admin(w, r) == nil {
			return
		}
		all := []map[string]any{}
		for _, rec := range f.shares {
			all = append(all, rec)
		}
		writeJSON(w, http.StatusOK, map[string]any{"shares": all})

	case r.Method == http.MethodPost && path == "/admin/shares":
		if f.admin(w, r) == nil {
			return
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		memberID := int(body["memberId"].(float64))
		f.shares[memberID] = body
		writeJSON(w, http.StatusCreated, map[string]string{"msg": "Shares assigned"})

	case strings.HasPrefix(path, "/admin/shares/"):
		if f.admin(w, r) == nil {
			return
		}
		memberID, _ := strconv.Atoi(strings.TrimPrefix(path, "/admin/shares/"))
		switch r.Method {
		case http.MethodPut:
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			body["memberId"] = float64(memberID)
			f.shares[memberID] = body
			writeJSON(w, http.StatusOK, map[string]string{"msg": "Shares updated"})
		case http.MethodDelete:
			delete(f.shares, memberID)
			writeJSON(w, http.StatusOK, map[string]string{"msg": "Share record deleted"})
		}

	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"msg": "not found"})
	}
}

// authed resolves the bearer token or writes a 401.
func (f *fakeChamaAPI) authed(w http.ResponseWriter, r *http.Request) *fakeUser {
	u := f.userByToken(r)
	if u == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "missing token"})
	}
	return u
}

// admin resolves the bearer token and requires the admin role.
func (f *fakeChamaAPI) admin(w http.ResponseWriter, r *http.Request) *fakeUser {
	u := f.userByToken(r)
	if u == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "missing token"})
		return nil
	}
	if u.Role != "admin" {
		writeJSON(w, http.StatusForbidden, map[string]string{"msg": "admin only"})
		return nil
	}
	return u
}

func (f *fakeChamaAPI) memberLoans(memberID int) []map[string]any {
	loans := []map[string]any{}
	if l, ok := f.loans[memberID]; ok {
		loans = append(loans, l)
	}
	return loans
}

func (f *fakeChamaAPI) memberPayments(memberID int) []map[string]any {
	payments := []map[string]any{}
	for _, p := range f.payments {
		if asInt(p["memberId"]) == memberID {
			payments = append(payments, p)
		}
	}
	return payments
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

// RequestCount returns the number of API requests seen so far.
func (f *fakeChamaAPI) RequestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Requests
}

// testApp holds the running console, the fake chama API, and Playwright.
type testApp struct {
	BaseURL string
	API     *fakeChamaAPI
	DB      *sql.DB
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp wires the console against a fake chama API with a temp
// SQLite session DB and starts both HTTP servers.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	fakeAPI := newFakeChamaAPI()
	apiSrv := &http.Server{Handler: fakeAPI}
	apiListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen for fake API: %v", err)
	}
	go apiSrv.Serve(apiListener)
	apiBase := "http://" + apiListener.Addr().String()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	// Find a free port for the console
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/content paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	// A browser test fires far more requests per second than a person.
	web.RateLimitPerSecond = 1000
	web.SetEmailSender(email.NewNoopSender(), "Chama <noreply@chama.local>", "info@chama.local")

	cfg := &config.Config{
		Addr:        fmt.Sprintf("127.0.0.1:%d", port),
		APIBaseURL:  apiBase,
		DBPath:      dbPath,
		Env:         "development",
		ContentPath: "content",
	}
	mux := web.NewMux(&web.Deps{
		API:      api.New(apiBase),
		Sessions: sessionStore.NewSQLiteStore(db),
	}, cfg)

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/auth")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		API:     fakeAPI,
		DB:      db,
		PW:      pw,
		Browser: browser,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		apiSrv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login logs in through the auth page and waits for the expected landing
// URL.
func (a *testApp) login(t *testing.T, page playwright.Page, email, password, landing string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/auth"); err != nil {
		t.Fatalf("failed to navigate to auth: %v", err)
	}
	if err := page.Locator("input[name=Email]").Fill(email); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("form[action='/auth/login'] button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+landing, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not land on %s: %v", landing, err)
	}
}

// loginMember logs in the seeded verified member.
func (a *testApp) loginMember(t *testing.T, page playwright.Page) {
	a.login(t, page, "member@test.com", "MemberPass1!", "/member/shares")
}

// loginAdmin logs in the seeded admin.
func (a *testApp) loginAdmin(t *testing.T, page playwright.Page) {
	a.login(t, page, "admin@test.com", "AdminPass1!", "/admin/users")
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}

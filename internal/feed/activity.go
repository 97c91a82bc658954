package feed

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	APIInterval = 2500 * time.Millisecond
	APICap      = 8

	GitInterval = 4 * time.Second
	GitCap      = 6
	gitPrime    = 3

	DBInterval = 3500 * time.Millisecond
	DBCap      = 6
	dbPrime    = 2
)

type Endpoint struct {
	Method  string
	URL     string
	Status  string
	Latency string
}

var Endpoints = []Endpoint{
	{"POST", "/api/v1/payments/process", "201 Created", "45ms"},
	{"GET", "/api/v1/payments?status=ACTIVE", "200 OK", "12ms"},
	{"GET", "/api/v1/products/list", "200 OK", "23ms"},
	{"PUT", "/api/v1/payments/settle/TXN-4892", "200 OK", "67ms"},
	{"POST", "/api/v1/reports/generate", "201 Created", "134ms"},
	{"GET", "/api/v1/users/profile", "200 OK", "8ms"},
	{"DELETE", "/api/v1/payments/draft/D-201", "204 No Content", "31ms"},
	{"POST", "/api/v1/auth/refresh-token", "200 OK", "15ms"},
	{"GET", "/api/v1/transactions?page=1&size=20", "200 OK", "56ms"},
	{"PUT", "/api/v1/products/config/update", "200 OK", "42ms"},
	{"POST", "/api/v1/payments/validate", "200 OK", "28ms"},
	{"GET", "/api/v1/reports/download/RPT-7721", "200 OK", "89ms"},
	{"POST", "/api/v1/notifications/send", "202 Accepted", "19ms"},
	{"GET", "/api/v1/health", "200 OK", "2ms"},
	{"PUT", "/api/v1/users/preferences", "200 OK", "35ms"},
}

type APICall struct {
	At time.Time
	Endpoint
}

// Timestamp renders the wall-clock time the call was logged.
func (c APICall) Timestamp() string { return c.At.Format("15:04:05") }

// APILog replays Endpoints in order.
type APILog struct {
	log *Log[APICall]
	idx int
}

func NewAPILog() *APILog { return &APILog{log: NewLog[APICall](APICap)} }

func (a *APILog) Name() string            { return "api" }
func (a *APILog) Interval() time.Duration { return APIInterval }
func (a *APILog) Start(now time.Time)     { a.Tick(now) }

func (a *APILog) Tick(now time.Time) {
	a.log.Push(APICall{At: now, Endpoint: Endpoints[a.idx%len(Endpoints)]})
	a.idx++
}

func (a *APILog) Entries() []APICall { return a.log.Entries() }

type Commit struct {
	Hash   string
	Msg    string
	Branch string
	Age    string
}

var commitFixtures = []Commit{
	{Msg: "feat(payment): add multi-currency support", Branch: "feature/payment-api"},
	{Msg: "fix(ui): resolve Redux state race condition", Branch: "bugfix/redux-state"},
	{Msg: "refactor: migrate PaymentAction to Spring Controller", Branch: "migration/spring"},
	{Msg: "chore(docker): update JBoss base image to 7.4", Branch: "devops/docker"},
	{Msg: "feat(reports): add Jasper PDF export endpoint", Branch: "feature/jasper"},
	{Msg: "fix(db): optimize Oracle query for transactions", Branch: "bugfix/db-perf"},
	{Msg: "test: add JUnit tests for PaymentService", Branch: "test/payment"},
	{Msg: "ci(jenkins): add SonarQube quality gate", Branch: "devops/jenkins"},
	{Msg: "feat(ui): implement product config React component", Branch: "feature/product-ui"},
	{Msg: "docs: update API Swagger documentation", Branch: "docs/swagger"},
	{Msg: "refactor: extract common DTO validation logic", Branch: "refactor/dto"},
	{Msg: "fix(deploy): correct WildFly datasource config", Branch: "bugfix/wildfly"},
	{Msg: "feat(auth): add JWT refresh token rotation", Branch: "feature/auth"},
	{Msg: "perf: add Redis cache for product catalog", Branch: "perf/caching"},
}

// GitFeed replays commit messages with a fresh hash and age each time.
type GitFeed struct {
	rng *rand.Rand
	log *Log[Commit]
	idx int
}

func NewGitFeed(rng *rand.Rand) *GitFeed {
	return &GitFeed{rng: rng, log: NewLog[Commit](GitCap)}
}

func (g *GitFeed) Name() string            { return "git" }
func (g *GitFeed) Interval() time.Duration { return GitInterval }

func (g *GitFeed) Start(now time.Time) {
	for i := 0; i < gitPrime; i++ {
		g.Tick(now)
	}
}

func (g *GitFeed) Tick(time.Time) {
	c := commitFixtures[g.idx%len(commitFixtures)]
	c.Hash = fmt.Sprintf("%07x", g.rng.Int63n(1<<28))
	c.Age = fmt.Sprintf("%dm ago", g.rng.Intn(55)+1)
	g.log.Push(c)
	g.idx++
}

func (g *GitFeed) Entries() []Commit { return g.log.Entries() }

type Query struct {
	SQL     string
	Rows    string
	Latency string
}

var queryFixtures = []Query{
	{"SELECT * FROM payments WHERE status='ACTIVE'", "247 rows", "12ms"},
	{"INSERT INTO transactions (amount, currency) VALUES (1500, 'USD')", "1 row", "3ms"},
	{"UPDATE products SET config=:1 WHERE id=:2", "1 row", "5ms"},
	{"SELECT p.*, t.amount FROM payments p JOIN transactions t ON p.id=t.pay_id", "89 rows", "34ms"},
	{"DELETE FROM draft_payments WHERE created < SYSDATE-30", "15 rows", "8ms"},
	{"SELECT COUNT(*) FROM users WHERE role='ADMIN'", "1 row", "2ms"},
	{"ALTER INDEX idx_payments_status REBUILD", "0 rows", "156ms"},
	{"SELECT report_data FROM jasper_cache WHERE id=:1", "1 row", "6ms"},
	{"EXPLAIN PLAN FOR SELECT * FROM transactions WHERE amount > 10000", "3 rows", "1ms"},
	{"MERGE INTO settlement_batch USING dual ON (id=:1)", "1 row", "9ms"},
}

type DBQueries struct {
	log *Log[Query]
	idx int
}

func NewDBQueries() *DBQueries { return &DBQueries{log: NewLog[Query](DBCap)} }

func (d *DBQueries) Name() string            { return "db" }
func (d *DBQueries) Interval() time.Duration { return DBInterval }

func (d *DBQueries) Start(now time.Time) {
	for i := 0; i < dbPrime; i++ {
		d.Tick(now)
	}
}

func (d *DBQueries) Tick(time.Time) {
	d.log.Push(queryFixtures[d.idx%len(queryFixtures)])
	d.idx++
}

func (d *DBQueries) Entries() []Query { return d.log.Entries() }

// Package e2e provides end-to-end tests for the product service.
// The actual application handler — real in-memory store, service, routing and
// middleware — is run in an `httptest.Server`, and requests exercise the full
// stack over HTTP. It uses `testify/suite` for structure and lifecycle
// management (`SetupSuite`, `TearDownSuite`, `SetupTest`).
//
// Test coverage includes:
//   - Happy path CRUD operations against the seeded store.
//   - The list query pipeline (search, category, price range, pagination).
//   - API-key authentication on mutating routes.
//   - Input validation (first violation only) and the not-found fallback.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/avelichko/prodcatalog/internal/app"
	"github.com/avelichko/prodcatalog/internal/config"
	"github.com/avelichko/prodcatalog/internal/service"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// productURL is the base URL for the product service API.
const productURL = "/api/products"

// testAPIKey is the API key the test configuration is wired with.
const testAPIKey = "e2e-api-key"

// ProductServiceE2ESuite is a test suite for end-to-end tests of the product service.
type ProductServiceE2ESuite struct {
	suite.Suite
	server     *httptest.Server // HTTP server for the product service application
	httpClient *http.Client     // HTTP client for making requests to the server
	appCfg     *config.Config   // Application configuration for tests
	logger     *slog.Logger     // Logger for the test suite
}

// testConfig creates a configuration for the product service application.
func testConfig() *config.Config {
	var cfg config.Config

	cfg.HTTPServer.Port = 0 // httptest.Server will assign a random port
	cfg.HTTPServer.MaxHeaderBytes = 1 << 20
	cfg.HTTPServer.Timeout.Read = 10 * time.Minute
	cfg.HTTPServer.Timeout.Write = 10 * time.Minute
	cfg.HTTPServer.Timeout.Idle = 60 * time.Minute
	cfg.HTTPServer.Timeout.ReadHeader = 5 * time.Minute
	cfg.Auth.APIKey = testAPIKey
	cfg.Env = config.EnvProduction

	return &cfg
}

// SetupSuite initializes the logger and application configuration.
func (s *ProductServiceE2ESuite) SetupSuite() {
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s.appCfg = testConfig()
}

// SetupTest builds a fresh application instance for each test so that tests
// are fully isolated: every test starts from the seed product set.
func (s *ProductServiceE2ESuite) SetupTest() {
	deps, err := app.SetupDependencies(s.logger)
	require.NoError(s.T(), err, "Failed to setup application for E2E")

	s.server = httptest.NewServer(app.SetupHTTPHandler(deps, s.appCfg))
	s.httpClient = s.server.Client()
}

// TearDownTest stops the per-test server.
func (s *ProductServiceE2ESuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func TestProductServiceE2E(t *testing.T) {
	suite.Run(t, new(ProductServiceE2ESuite))
}

// --------------------------------------------------------------------------
// ---------- Payload structures and Helper methods for E2E tests -----------
// --------------------------------------------------------------------------

type productPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

type messageBody struct {
	Message string `json:"message"`
}

func validPayload() productPayload {
	return productPayload{
		Name:        "Mechanical Keyboard",
		Description: "Tenkeyless mechanical keyboard",
		Price:       120.00,
		Category:    "Electronics",
		Stock:       7,
	}
}

// doRequest performs an HTTP request against the test server and returns the
// response with its decoded body bytes.
func (s *ProductServiceE2ESuite) doRequest(method, path, apiKey string, payload any) (*http.Response, []byte) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(s.T(), err, "Failed to marshal request payload")
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.server.URL+path, body)
	require.NoError(s.T(), err, "Failed to build request")
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err, "Request failed")
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err, "Failed to read response body")
	return resp, raw
}

// listProducts fetches one page of products with the given raw query string.
func (s *ProductServiceE2ESuite) listProducts(rawQuery string) service.ProductPage {
	path := productURL
	if rawQuery != "" {
		path += "?" + rawQuery
	}
	resp, raw := s.doRequest(http.MethodGet, path, "", nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var page service.ProductPage
	require.NoError(s.T(), json.Unmarshal(raw, &page), "Failed to decode list response")
	return page
}

// storeCount returns the number of products currently in the store.
func (s *ProductServiceE2ESuite) storeCount() int {
	return s.listProducts("limit=1000").Total
}

// --------------------------------------------------------------------------
// ------------------------------- Test cases -------------------------------
// --------------------------------------------------------------------------

func (s *ProductServiceE2ESuite) TestList_SeededStore() {
	page := s.listProducts("")

	s.Equal(1, page.Page)
	s.Equal(10, page.Limit)
	s.Equal(5, page.Total)
	s.Len(page.Products, 5)
	for _, p := range page.Products {
		s.NotEmpty(p.ID)
		s.NotEmpty(p.Name)
	}
}

func (s *ProductServiceE2ESuite) TestList_QueryPipeline() {
	// search + category + price range over the seed set
	page := s.listProducts("q=laptop")
	s.Equal(1, page.Total)
	s.Equal("Laptop", page.Products[0].Name)

	page = s.listProducts("category=electronics")
	s.Equal(2, page.Total)

	page = s.listProducts("category=Electronics&minPrice=1000")
	s.Equal(1, page.Total)
	s.Equal("Laptop", page.Products[0].Name)

	page = s.listProducts("maxPrice=50")
	s.Equal(2, page.Total) // Coffee Maker and Notebook

	// unparseable bounds are ignored, not an error
	page = s.listProducts("minPrice=abc")
	s.Equal(5, page.Total)
}

func (s *ProductServiceE2ESuite) TestList_Pagination() {
	page := s.listProducts("page=2&limit=3")
	s.Equal(5, page.Total)
	s.Equal(2, page.Page)
	s.Equal(3, page.Limit)
	s.Len(page.Products, 2)

	// out-of-range page yields an empty page, total unchanged
	page = s.listProducts("page=10&limit=3")
	s.Equal(5, page.Total)
	s.Empty(page.Products)
}

func (s *ProductServiceE2ESuite) TestCreate_WithoutAPIKey() {
	before := s.storeCount()

	resp, raw := s.doRequest(http.MethodPost, productURL, "", validPayload())

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	var body messageBody
	s.Require().NoError(json.Unmarshal(raw, &body))
	s.NotEmpty(body.Message)
	s.Equal(before, s.storeCount(), "Store must be unchanged after rejected create")
}

func (s *ProductServiceE2ESuite) TestCreate_WithAPIKey() {
	before := s.storeCount()

	resp, raw := s.doRequest(http.MethodPost, productURL, testAPIKey, validPayload())

	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created service.ProductDto
	s.Require().NoError(json.Unmarshal(raw, &created))
	s.NotEmpty(created.ID)
	s.Equal("Mechanical Keyboard", created.Name)
	s.Equal(before+1, s.storeCount())

	// created product is readable via GET
	resp, raw = s.doRequest(http.MethodGet, productURL+"/"+created.ID, "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var found service.ProductDto
	s.Require().NoError(json.Unmarshal(raw, &found))
	s.Equal(created, found)
}

func (s *ProductServiceE2ESuite) TestCreate_ValidationFirstViolation() {
	payload := validPayload()
	payload.Name = "   "
	payload.Price = -10

	resp, raw := s.doRequest(http.MethodPost, productURL, testAPIKey, payload)

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	var body messageBody
	s.Require().NoError(json.Unmarshal(raw, &body))
	s.Contains(body.Message, "name", "First violating field must be reported")
}

func (s *ProductServiceE2ESuite) TestUpdate_FullReplace() {
	// create a product to update
	resp, raw := s.doRequest(http.MethodPost, productURL, testAPIKey, validPayload())
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created service.ProductDto
	s.Require().NoError(json.Unmarshal(raw, &created))

	replacement := productPayload{
		Name:        "Ergonomic Keyboard",
		Description: "Split ergonomic keyboard",
		Price:       150.00,
		Category:    "Electronics",
		Stock:       0,
	}
	resp, raw = s.doRequest(http.MethodPut, productURL+"/"+created.ID, testAPIKey, replacement)

	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var updated service.ProductDto
	s.Require().NoError(json.Unmarshal(raw, &updated))
	s.Equal(created.ID, updated.ID)
	s.Equal("Ergonomic Keyboard", updated.Name)
	s.Equal(0, updated.Stock)
}

func (s *ProductServiceE2ESuite) TestUpdate_UnknownID() {
	resp, _ := s.doRequest(http.MethodPut, productURL+"/unknown-id", testAPIKey, validPayload())
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ProductServiceE2ESuite) TestDelete() {
	resp, raw := s.doRequest(http.MethodPost, productURL, testAPIKey, validPayload())
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created service.ProductDto
	s.Require().NoError(json.Unmarshal(raw, &created))
	before := s.storeCount()

	resp, raw = s.doRequest(http.MethodDelete, productURL+"/"+created.ID, testAPIKey, nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	s.Empty(raw)
	s.Equal(before-1, s.storeCount())

	// deleting again reports not found, count unchanged
	resp, _ = s.doRequest(http.MethodDelete, productURL+"/"+created.ID, testAPIKey, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal(before-1, s.storeCount())
}

func (s *ProductServiceE2ESuite) TestDelete_WithoutAPIKey() {
	page := s.listProducts("limit=1")
	s.Require().NotEmpty(page.Products)

	resp, _ := s.doRequest(http.MethodDelete, productURL+"/"+page.Products[0].ID, "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *ProductServiceE2ESuite) TestNotFoundFallback() {
	resp, raw := s.doRequest(http.MethodGet, "/api/nothing-here", "", nil)

	s.Equal(http.StatusNotFound, resp.StatusCode)
	var body messageBody
	s.Require().NoError(json.Unmarshal(raw, &body))
	s.Equal(fmt.Sprintf("Not Found - %s", "/api/nothing-here"), body.Message)
}

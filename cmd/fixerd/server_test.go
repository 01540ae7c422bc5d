package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Server", func() {
	var server *Server

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		server = NewServer(NewPlayerFixer(), ServerConfig{GinMode: gin.TestMode})
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		server.Engine().ServeHTTP(w, req)
		return w
	}

	It("reports healthy with the current version", func() {
		w := do(http.MethodGet, "/healthz", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var body map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body["current"]).To(BeNumerically("==", 3))
	})

	It("lists the types bound in a published schema version", func() {
		w := do(http.MethodGet, "/schemas/1", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("player"))
	})

	It("renders a bound type as an OpenAPI schema", func() {
		w := do(http.MethodGet, "/schemas/3/player/openapi", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("\"object\""))
		Expect(w.Body.String()).To(ContainSubstring("nickname"))
	})

	It("diffs a type's shape across two published versions", func() {
		w := do(http.MethodGet, "/schemas/diff?type=player&from=1&to=2", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("nickname"))
	})

	It("migrates a payload from an older version to a newer one", func() {
		body := `{"type":"player","from":1,"to":3,"data":{"id":"p-1","full_name":"Ada Lovelace"}}`
		w := do(http.MethodPost, "/migrate", body)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp struct {
			Data map[string]any `json:"data"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Data).NotTo(HaveKey("id"))
		Expect(resp.Data["nickname"]).To(Equal("Ada"))
	})

	It("attaches a diagnostics report when requested", func() {
		body := `{"type":"player","from":1,"to":3,"data":{"id":"p-1","full_name":"Ada Lovelace"},"diagnostics":true}`
		w := do(http.MethodPost, "/migrate", body)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("\"diagnostics\""))
	})

	It("rejects a migrate request missing required fields", func() {
		w := do(http.MethodPost, "/migrate", `{"type":"player"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns not found for a version with no published schema", func() {
		w := do(http.MethodGet, "/schemas/99", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})

package hub_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/synaptiq/cereb/pkg/hub"
)

var _ = Describe("Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("ListTools", func() {
		It("should fetch and decode the published tools", func() {
			var gotPath, gotMethod string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotMethod = r.Method
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"tools": []map[string]string{
						{"name": "transcriber", "description": "transcribes audio", "author": "aios", "version": "1.2.0"},
						{"name": "currency_converter", "description": "converts currency", "author": "community", "version": "0.3.1"},
					},
				})
			}))
			defer server.Close()

			client := hub.NewClient(hub.ClientConfig{BaseURL: server.URL})
			tools, err := client.ListTools(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(gotMethod).To(Equal("GET"))
			Expect(gotPath).To(Equal("/tools"))

			Expect(tools).To(HaveLen(2))
			Expect(tools[0].Name).To(Equal("transcriber"))
			Expect(tools[0].Author).To(Equal("aios"))
			Expect(tools[1].Version).To(Equal("0.3.1"))
		})

		It("should return an empty listing when the hub has no tools", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"tools": []any{}})
			}))
			defer server.Close()

			client := hub.NewClient(hub.ClientConfig{BaseURL: server.URL})
			tools, err := client.ListTools(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(tools).To(BeEmpty())
		})

		It("should surface hub failures with the status and body", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "database offline", http.StatusBadGateway)
			}))
			defer server.Close()

			client := hub.NewClient(hub.ClientConfig{BaseURL: server.URL})
			_, err := client.ListTools(ctx)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("listing tools"))
			Expect(err.Error()).To(ContainSubstring("502"))
			Expect(err.Error()).To(ContainSubstring("database offline"))
		})

		It("should fail when the hub is unreachable", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			server.Close()

			client := hub.NewClient(hub.ClientConfig{BaseURL: server.URL})
			_, err := client.ListTools(ctx)
			Expect(err).To(HaveOccurred())
		})

		It("should fail on a malformed listing", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>maintenance</html>"))
			}))
			defer server.Close()

			client := hub.NewClient(hub.ClientConfig{BaseURL: server.URL})
			_, err := client.ListTools(ctx)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("decoding response"))
		})
	})

	Describe("ListAgents", func() {
		It("should fetch and decode the published agents", func() {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				json.NewEncoder(w).Encode(map[string]any{
					"agents": []map[string]string{
						{"name": "demo_agent", "description": "general assistant", "author": "aios", "version": "2.0.0"},
					},
				})
			}))
			defer server.Close()

			client := hub.NewClient(hub.ClientConfig{BaseURL: server.URL})
			agents, err := client.ListAgents(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(gotPath).To(Equal("/agents"))
			Expect(agents).To(HaveLen(1))
			Expect(agents[0].Name).To(Equal("demo_agent"))
			Expect(agents[0].Version).To(Equal("2.0.0"))
		})
	})
})

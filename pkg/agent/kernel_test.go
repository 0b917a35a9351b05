package agent_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/synaptiq/cereb/pkg/agent"
	"github.com/synaptiq/cereb/pkg/aios"
)

var _ = Describe("KernelAgent", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("NewKernelAgent", func() {
		It("should require a client", func() {
			_, err := agent.NewKernelAgent(agent.Config{AgentName: "demo_agent"})
			Expect(err).To(HaveOccurred())
		})

		It("should require an agent name", func() {
			_, err := agent.NewKernelAgent(agent.Config{
				Client: aios.NewClient(aios.ClientConfig{}),
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RunHumanEval", func() {
		It("should send one chat query and return the raw output", func() {
			var gotPath string
			var gotBody map[string]any

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				Expect(json.NewDecoder(r.Body).Decode(&gotBody)).To(Succeed())
				json.NewEncoder(w).Encode(map[string]any{
					"response_message": "<FINAL_ANSWER>    return 42</FINAL_ANSWER>",
					"finished":         true,
				})
			}))
			defer server.Close()

			a, err := agent.NewKernelAgent(agent.Config{
				Client:    aios.NewClient(aios.ClientConfig{BaseURL: server.URL}),
				AgentName: "coder_agent",
				Models:    []aios.ModelConfig{{Name: "qwen2.5:7b"}},
			})
			Expect(err).NotTo(HaveOccurred())

			out, err := a.RunHumanEval(ctx, "def answer() -> int:")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("<FINAL_ANSWER>    return 42</FINAL_ANSWER>"))

			Expect(gotPath).To(Equal("/coder_agent"))
			Expect(gotBody).To(HaveKeyWithValue("action_type", "chat"))

			messages, ok := gotBody["messages"].([]any)
			Expect(ok).To(BeTrue())
			Expect(messages).To(HaveLen(2))

			system, ok := messages[0].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(system).To(HaveKeyWithValue("role", "system"))
			Expect(system["content"]).To(ContainSubstring("<FINAL_ANSWER>"))

			user, ok := messages[1].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(user).To(HaveKeyWithValue("role", "user"))
			Expect(user).To(HaveKeyWithValue("content", "def answer() -> int:"))
		})

		It("should surface kernel failures as errors with the status code", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusInternalServerError)
			}))
			defer server.Close()

			a, err := agent.NewKernelAgent(agent.Config{
				Client:    aios.NewClient(aios.ClientConfig{BaseURL: server.URL}),
				AgentName: "coder_agent",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = a.RunHumanEval(ctx, "def answer() -> int:")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("500"))
			Expect(err.Error()).To(ContainSubstring("model not loaded"))
		})

		It("should surface unreachable kernels as errors with status 599", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			server.Close()

			a, err := agent.NewKernelAgent(agent.Config{
				Client:    aios.NewClient(aios.ClientConfig{BaseURL: server.URL}),
				AgentName: "coder_agent",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = a.RunHumanEval(ctx, "def answer() -> int:")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("599"))
		})
	})
})

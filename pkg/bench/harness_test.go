package bench_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/synaptiq/cereb/pkg/bench"
)

var _ = Describe("Harness", func() {
	var (
		ctx        context.Context
		records    []bench.Record
		outputFile string
	)

	BeforeEach(func() {
		ctx = context.Background()
		records = []bench.Record{
			{TaskID: "HumanEval/0", Prompt: "def a():", Test: "t", EntryPoint: "a"},
			{TaskID: "HumanEval/1", Prompt: "def b():", Test: "t", EntryPoint: "b"},
			{TaskID: "HumanEval/2", Prompt: "def c():", Test: "t", EntryPoint: "c"},
		}
		outputFile = filepath.Join(GinkgoT().TempDir(), "results.jsonl")
	})

	echo := func(ctx context.Context, rec bench.Record) (bench.Result, error) {
		return bench.Result{TaskID: rec.TaskID, Completion: "    pass"}, nil
	}

	readLines := func() []string {
		data, err := os.ReadFile(outputFile)
		Expect(err).NotTo(HaveOccurred())
		trimmed := strings.TrimRight(string(data), "\n")
		if trimmed == "" {
			return nil
		}
		return strings.Split(trimmed, "\n")
	}

	Describe("NewHarness", func() {
		It("should require a process func", func() {
			_, err := bench.NewHarness(nil, bench.Options{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Run", func() {
		It("should process every record in order when the limit is negative", func() {
			var seen []string
			h, err := bench.NewHarness(func(ctx context.Context, rec bench.Record) (bench.Result, error) {
				seen = append(seen, rec.TaskID)
				return echo(ctx, rec)
			}, bench.Options{Limit: -1})
			Expect(err).NotTo(HaveOccurred())

			summary, err := h.Run(ctx, records, outputFile)
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(Equal([]string{"HumanEval/0", "HumanEval/1", "HumanEval/2"}))
			Expect(summary.Attempted).To(Equal(3))
			Expect(summary.Written).To(Equal(3))
			Expect(summary.Failed).To(Equal(0))
			Expect(summary.RunID).NotTo(BeEmpty())
			Expect(readLines()).To(HaveLen(3))
		})

		It("should stop at the limit", func() {
			calls := 0
			h, err := bench.NewHarness(func(ctx context.Context, rec bench.Record) (bench.Result, error) {
				calls++
				return echo(ctx, rec)
			}, bench.Options{Limit: 2})
			Expect(err).NotTo(HaveOccurred())

			summary, err := h.Run(ctx, records, outputFile)
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(2))
			Expect(summary.Written).To(Equal(2))

			lines := readLines()
			Expect(lines).To(HaveLen(2))
			Expect(lines[0]).To(ContainSubstring("HumanEval/0"))
			Expect(lines[1]).To(ContainSubstring("HumanEval/1"))
		})

		It("should stop at dataset exhaustion when the limit is larger", func() {
			h, err := bench.NewHarness(echo, bench.Options{Limit: 100})
			Expect(err).NotTo(HaveOccurred())

			summary, err := h.Run(ctx, records, outputFile)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Attempted).To(Equal(3))
			Expect(readLines()).To(HaveLen(3))
		})

		It("should write an empty file without processing when the limit is zero", func() {
			calls := 0
			h, err := bench.NewHarness(func(ctx context.Context, rec bench.Record) (bench.Result, error) {
				calls++
				return echo(ctx, rec)
			}, bench.Options{Limit: 0})
			Expect(err).NotTo(HaveOccurred())

			summary, err := h.Run(ctx, records, outputFile)
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(0))
			Expect(summary.Attempted).To(Equal(0))
			Expect(summary.Written).To(Equal(0))

			data, err := os.ReadFile(outputFile)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(BeEmpty())
		})

		It("should handle an empty dataset", func() {
			h, err := bench.NewHarness(echo, bench.Options{Limit: -1})
			Expect(err).NotTo(HaveOccurred())

			summary, err := h.Run(ctx, nil, outputFile)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Attempted).To(Equal(0))

			_, err = os.Stat(outputFile)
			Expect(err).NotTo(HaveOccurred(), "the output file is written even for an empty run")
		})

		Context("with the fail-fast policy", func() {
			It("should abort on the first failure but keep earlier results", func() {
				h, err := bench.NewHarness(func(ctx context.Context, rec bench.Record) (bench.Result, error) {
					if rec.TaskID == "HumanEval/1" {
						return bench.Result{}, errors.New("kernel query failed (status 599): connection refused")
					}
					return echo(ctx, rec)
				}, bench.Options{Limit: -1, OnFailure: bench.FailFast})
				Expect(err).NotTo(HaveOccurred())

				summary, err := h.Run(ctx, records, outputFile)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("HumanEval/1"))
				Expect(summary).NotTo(BeNil())
				Expect(summary.Attempted).To(Equal(2))
				Expect(summary.Failed).To(Equal(1))
				Expect(summary.Written).To(Equal(1))

				lines := readLines()
				Expect(lines).To(HaveLen(1))
				Expect(lines[0]).To(ContainSubstring("HumanEval/0"))
			})
		})

		Context("with the continue-on-error policy", func() {
			It("should record failures and process the rest", func() {
				h, err := bench.NewHarness(func(ctx context.Context, rec bench.Record) (bench.Result, error) {
					if rec.TaskID == "HumanEval/1" {
						return bench.Result{}, fmt.Errorf("no final answer in output")
					}
					return echo(ctx, rec)
				}, bench.Options{Limit: -1, OnFailure: bench.ContinueOnError})
				Expect(err).NotTo(HaveOccurred())

				summary, err := h.Run(ctx, records, outputFile)
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.Attempted).To(Equal(3))
				Expect(summary.Failed).To(Equal(1))
				Expect(summary.Written).To(Equal(3))

				lines := readLines()
				Expect(lines).To(HaveLen(3))
				Expect(lines[1]).To(ContainSubstring(`"error":"no final answer in output"`))
				Expect(lines[1]).To(ContainSubstring(`"completion":""`))
			})
		})

		It("should stop when the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)

			h, err := bench.NewHarness(func(ctx context.Context, rec bench.Record) (bench.Result, error) {
				cancel()
				return echo(ctx, rec)
			}, bench.Options{Limit: -1})
			Expect(err).NotTo(HaveOccurred())

			summary, err := h.Run(cancelled, records, outputFile)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(summary.Attempted).To(Equal(1))
			Expect(readLines()).To(HaveLen(1))
		})
	})
})

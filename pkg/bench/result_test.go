package bench_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/synaptiq/cereb/pkg/bench"
)

var _ = Describe("WriteResults", func() {
	var outputFile string

	BeforeEach(func() {
		outputFile = filepath.Join(GinkgoT().TempDir(), "results.jsonl")
	})

	It("should write one JSON line per result in list order", func() {
		results := []bench.Result{
			{TaskID: "HumanEval/0", Completion: "    return 1"},
			{TaskID: "HumanEval/1", Completion: "    return 2"},
		}

		Expect(bench.WriteResults(results, outputFile)).To(Succeed())

		data, err := os.ReadFile(outputFile)
		Expect(err).NotTo(HaveOccurred())

		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(ContainSubstring(`"task_id":"HumanEval/0"`))
		Expect(lines[1]).To(ContainSubstring(`"task_id":"HumanEval/1"`))
	})

	It("should produce an empty file for an empty list", func() {
		Expect(bench.WriteResults(nil, outputFile)).To(Succeed())

		data, err := os.ReadFile(outputFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(BeEmpty())
	})

	It("should overwrite an existing file completely", func() {
		long := make([]bench.Result, 5)
		for i := range long {
			long[i] = bench.Result{TaskID: "HumanEval/0", Completion: "    pass"}
		}
		Expect(bench.WriteResults(long, outputFile)).To(Succeed())

		short := []bench.Result{{TaskID: "HumanEval/9", Completion: "    pass"}}
		Expect(bench.WriteResults(short, outputFile)).To(Succeed())

		data, err := os.ReadFile(outputFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.Count(string(data), "\n")).To(Equal(1))
		Expect(string(data)).To(ContainSubstring("HumanEval/9"))
		Expect(string(data)).NotTo(ContainSubstring("HumanEval/0"))
	})

	It("should be idempotent", func() {
		results := []bench.Result{
			{TaskID: "HumanEval/0", Completion: "    return 1"},
			{TaskID: "HumanEval/1", Error: "kernel unreachable"},
		}

		Expect(bench.WriteResults(results, outputFile)).To(Succeed())
		first, err := os.ReadFile(outputFile)
		Expect(err).NotTo(HaveOccurred())

		Expect(bench.WriteResults(results, outputFile)).To(Succeed())
		second, err := os.ReadFile(outputFile)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
	})

	It("should omit the error field for clean predictions", func() {
		results := []bench.Result{{TaskID: "HumanEval/0", Completion: "    return 1"}}
		Expect(bench.WriteResults(results, outputFile)).To(Succeed())

		data, err := os.ReadFile(outputFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).NotTo(ContainSubstring(`"error"`))
	})

	It("should create missing parent directories", func() {
		nested := filepath.Join(GinkgoT().TempDir(), "out", "run1", "results.jsonl")
		Expect(bench.WriteResults(nil, nested)).To(Succeed())

		_, err := os.Stat(nested)
		Expect(err).NotTo(HaveOccurred())
	})
})

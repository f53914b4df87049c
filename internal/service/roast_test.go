package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/faizanfirdousi/roast-my-gpa/common/llm"
	"github.com/faizanfirdousi/roast-my-gpa/internal/service"
	"github.com/faizanfirdousi/roast-my-gpa/internal/store"
	"github.com/faizanfirdousi/roast-my-gpa/internal/transcript"
)

const sampleText = `SEMESTER GRADE REPORT
CS101 DATA STRUCTURES 4 4 A+ 9
CS101_TW DATA STRUCTURES 1 1 O 10
MA102 ENGINEERING MATHEMATICS 4 4 B 6
SGPA : 7.90
CGPA : 8.20`

func answer(roast string) func(context.Context, llm.Request, any) (*llm.Response, error) {
	return func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
		result.(*service.RoastResponse).Roast = roast
		return &llm.Response{PromptTokens: 120, CompletionTokens: 40}, nil
	}
}

var _ = Describe("RoastService", func() {
	var (
		ctx    context.Context
		client *mockLLMClient
		cache  *mockRoastCache
		svc    service.RoastService
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &mockLLMClient{chatFn: answer("  bookworm detected  ")}
		cache = &mockRoastCache{}
		svc = service.NewRoastService(client, cache, service.RoastConfig{
			MaxTokens:   512,
			MaxAttempts: 3,
			Backoff:     time.Millisecond,
		})
	})

	It("roasts a parsed transcript", func() {
		result, err := svc.Roast(ctx, service.RoastParams{FileName: "report.pdf", Text: sampleText})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Roast).To(Equal("bookworm detected"))
		Expect(result.Cached).To(BeFalse())
		Expect(result.RequestID).NotTo(BeZero())
		Expect(result.Extraction.Records).To(HaveLen(3))
		Expect(*result.Extraction.GPA.GPA).To(Equal("7.90"))

		Expect(client.calls).To(Equal(1))
		Expect(client.lastReq.SchemaName).To(Equal("roast_response"))
		Expect(client.lastReq.MaxTokens).To(Equal(512))
		Expect(client.lastReq.UserPrompt).To(ContainSubstring("- CS101_TW (Term Work): O (Grade Point: 10)"))
	})

	It("stores the roast under the content key", func() {
		_, err := svc.Roast(ctx, service.RoastParams{Text: sampleText})
		Expect(err).NotTo(HaveOccurred())
		Expect(cache.setCalls).To(Equal(1))
		Expect(cache.setKey).To(Equal(store.CacheKey(sampleText, "test-model")))
		Expect(cache.setRoast).To(Equal("bookworm detected"))
	})

	It("serves a cached roast without calling the model", func() {
		cache.getFn = func(_ context.Context, key string) (string, bool, error) {
			Expect(key).To(Equal(store.CacheKey(sampleText, "test-model")))
			return "cached roast", true, nil
		}

		result, err := svc.Roast(ctx, service.RoastParams{Text: sampleText})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Roast).To(Equal("cached roast"))
		Expect(result.Cached).To(BeTrue())
		Expect(client.calls).To(BeZero())
		Expect(cache.setCalls).To(BeZero())
	})

	It("ignores cache failures", func() {
		cache.getFn = func(context.Context, string) (string, bool, error) {
			return "", false, errors.New("redis down")
		}
		cache.setFn = func(context.Context, string, string) error {
			return errors.New("redis down")
		}

		result, err := svc.Roast(ctx, service.RoastParams{Text: sampleText})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Roast).To(Equal("bookworm detected"))
	})

	It("reports text without subject rows", func() {
		_, err := svc.Roast(ctx, service.RoastParams{Text: "CGPA : 8.20\nno rows here"})
		Expect(err).To(MatchError(service.ErrNoSubjectsParsed))
		Expect(errors.Is(err, transcript.ErrNoRecords)).To(BeTrue())
		Expect(client.calls).To(BeZero())
	})

	It("retries transient failures", func() {
		attempts := 0
		client.chatFn = func(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("connection reset by peer")
			}
			return answer("third time lucky")(ctx, req, result)
		}

		result, err := svc.Roast(ctx, service.RoastParams{Text: sampleText})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Roast).To(Equal("third time lucky"))
		Expect(client.calls).To(Equal(3))
	})

	It("gives up after the configured attempts", func() {
		client.chatFn = func(context.Context, llm.Request, any) (*llm.Response, error) {
			return nil, errors.New("connection reset by peer")
		}

		_, err := svc.Roast(ctx, service.RoastParams{Text: sampleText})
		Expect(err).To(MatchError(ContainSubstring("after 3 attempts")))
		Expect(client.calls).To(Equal(3))
		Expect(cache.setCalls).To(BeZero())
	})

	It("does not retry errors that are not retryable", func() {
		client.chatFn = func(context.Context, llm.Request, any) (*llm.Response, error) {
			return nil, context.Canceled
		}

		_, err := svc.Roast(ctx, service.RoastParams{Text: sampleText})
		Expect(err).To(MatchError(context.Canceled))
		Expect(client.calls).To(Equal(1))
	})

	It("rejects an empty roast", func() {
		client.chatFn = answer("   ")

		_, err := svc.Roast(ctx, service.RoastParams{Text: sampleText})
		Expect(err).To(MatchError(service.ErrEmptyRoast))
	})
})

var _ = Describe("ExtractService", func() {
	svc := service.NewExtractService()

	It("returns the extraction", func() {
		result, err := svc.Extract(context.Background(), sampleText)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Records).To(HaveLen(3))
		Expect(result.GPA.Lines).To(Equal([]string{"SGPA : 7.90", "CGPA : 8.20"}))
	})

	It("reports an empty extraction", func() {
		result, err := svc.Extract(context.Background(), "nothing to see")
		Expect(err).To(MatchError(service.ErrNoSubjectsParsed))
		Expect(result.Records).To(BeEmpty())
	})
})

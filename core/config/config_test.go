package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/faizanfirdousi/roast-my-gpa/core/config"
)

var managedKeys = []string{
	"APP_ENV", "PORT", "FRONTEND_URL", "MAX_UPLOAD_BYTES",
	"LLM_PROVIDER", "LLM_API_KEY", "GEMINI_API_KEY", "LLM_BASE_URL", "LLM_MODEL",
	"LLM_MAX_TOKENS", "LLM_MAX_ATTEMPTS", "LLM_TIMEOUT",
	"REDIS_URL", "ROAST_CACHE_PREFIX", "ROAST_CACHE_TTL",
	"OTEL_EXPORTER_OTLP_ENDPOINT",
}

var _ = Describe("Load", func() {
	BeforeEach(func() {
		saved := map[string]*string{}
		for _, k := range managedKeys {
			if v, ok := os.LookupEnv(k); ok {
				saved[k] = &v
			} else {
				saved[k] = nil
			}
			Expect(os.Unsetenv(k)).To(Succeed())
		}
		// Skip .env loading so a developer's local file can't leak in.
		Expect(os.Setenv("APP_ENV", "test")).To(Succeed())

		DeferCleanup(func() {
			for k, v := range saved {
				if v == nil {
					_ = os.Unsetenv(k)
				} else {
					_ = os.Setenv(k, *v)
				}
			}
		})
	})

	It("applies defaults for the CLI without an API key", func() {
		cfg, err := config.Load(config.ServiceTypeCLI)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Port).To(Equal("3002"))
		Expect(cfg.FrontendURL).To(Equal("http://localhost:5173"))
		Expect(cfg.MaxUploadBytes).To(Equal(int64(10 << 20)))
		Expect(cfg.LLM.Provider).To(Equal("openai"))
		Expect(cfg.LLM.Model).To(Equal("gemini-2.0-flash"))
		Expect(cfg.LLM.BaseURL).To(ContainSubstring("generativelanguage.googleapis.com"))
		Expect(cfg.LLM.MaxAttempts).To(Equal(3))
		Expect(cfg.LLM.Enabled()).To(BeFalse())
		Expect(cfg.Cache.Enabled()).To(BeFalse())
		Expect(cfg.Cache.TTL).To(Equal(24 * time.Hour))
		Expect(cfg.OTel.Enabled()).To(BeFalse())
	})

	It("requires an API key for the server", func() {
		_, err := config.Load(config.ServiceTypeServer)
		Expect(err).To(MatchError(ContainSubstring("LLM_API_KEY")))
	})

	It("falls back to GEMINI_API_KEY", func() {
		Expect(os.Setenv("GEMINI_API_KEY", "g-key")).To(Succeed())
		cfg, err := config.Load(config.ServiceTypeServer)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LLM.APIKey).To(Equal("g-key"))
	})

	It("prefers LLM_API_KEY over GEMINI_API_KEY", func() {
		Expect(os.Setenv("GEMINI_API_KEY", "g-key")).To(Succeed())
		Expect(os.Setenv("LLM_API_KEY", "l-key")).To(Succeed())
		cfg, err := config.Load(config.ServiceTypeServer)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LLM.APIKey).To(Equal("l-key"))
	})

	It("parses typed overrides and ignores malformed ones", func() {
		Expect(os.Setenv("LLM_TIMEOUT", "5s")).To(Succeed())
		Expect(os.Setenv("LLM_MAX_ATTEMPTS", "nope")).To(Succeed())
		Expect(os.Setenv("REDIS_URL", "redis://localhost:6379/0")).To(Succeed())
		cfg, err := config.Load(config.ServiceTypeCLI)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LLM.Timeout).To(Equal(5 * time.Second))
		Expect(cfg.LLM.MaxAttempts).To(Equal(3))
		Expect(cfg.Cache.Enabled()).To(BeTrue())
	})

	It("rejects unknown providers", func() {
		Expect(os.Setenv("LLM_PROVIDER", "cohere")).To(Succeed())
		_, err := config.Load(config.ServiceTypeCLI)
		Expect(err).To(MatchError(ContainSubstring("LLM_PROVIDER")))
	})

	It("rejects a non-positive upload limit", func() {
		Expect(os.Setenv("MAX_UPLOAD_BYTES", "0")).To(Succeed())
		_, err := config.Load(config.ServiceTypeCLI)
		Expect(err).To(HaveOccurred())
	})
})

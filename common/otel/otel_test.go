package otel_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/faizanfirdousi/roast-my-gpa/common/otel"
	"github.com/faizanfirdousi/roast-my-gpa/core/config"
)

var _ = Describe("Setup", func() {
	It("is a no-op without an endpoint", func() {
		t, err := otel.Setup(context.Background(), config.OTelConfig{ServiceName: "roast-my-gpa"})
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(BeNil())
	})
})

var _ = Describe("ParseHeaders", func() {
	DescribeTable("parses comma separated pairs",
		func(in string, expected map[string]string) {
			Expect(otel.ParseHeaders(in)).To(Equal(expected))
		},
		Entry("empty", "", map[string]string{}),
		Entry("single pair", "x-api-key=abc", map[string]string{"x-api-key": "abc"}),
		Entry("trims whitespace", " a = 1 , b=2", map[string]string{"a": "1", "b": "2"}),
		Entry("value containing equals", "auth=Basic dXNlcj1wYXNz", map[string]string{"auth": "Basic dXNlcj1wYXNz"}),
		Entry("skips malformed pairs", "novalue,a=1", map[string]string{"a": "1"}),
	)
})

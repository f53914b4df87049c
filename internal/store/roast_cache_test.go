package store_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/faizanfirdousi/roast-my-gpa/internal/store"
)

var _ = Describe("CacheKey", func() {
	It("is a stable hex sha256", func() {
		key := store.CacheKey("CS101 DATA 4 4 A+ 9", "gemini-2.0-flash")
		Expect(key).To(HaveLen(64))
		Expect(key).To(MatchRegexp(`^[0-9a-f]+$`))
		Expect(store.CacheKey("CS101 DATA 4 4 A+ 9", "gemini-2.0-flash")).To(Equal(key))
	})

	It("depends on the model", func() {
		Expect(store.CacheKey("same text", "model-a")).NotTo(Equal(store.CacheKey("same text", "model-b")))
	})

	It("does not collide when text and model are shifted", func() {
		Expect(store.CacheKey("bc", "a")).NotTo(Equal(store.CacheKey("c", "ab")))
	})
})

var _ = Describe("NoopRoastCache", func() {
	It("never hits", func() {
		var cache store.RoastCache = store.NoopRoastCache{}
		ctx := context.Background()

		Expect(cache.Set(ctx, "k", "roast")).To(Succeed())
		roast, found, err := cache.Get(ctx, "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
		Expect(roast).To(BeEmpty())
		Expect(cache.Close()).To(Succeed())
	})
})

var _ = Describe("redis roast cache", func() {
	var cache store.RoastCache

	BeforeEach(func() {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 50 * time.Millisecond,
			MaxRetries:  -1,
		})
		cache = store.NewRedisRoastCache(client, "", time.Minute, nil)
		DeferCleanup(cache.Close)
	})

	It("wraps transport failures on Get", func() {
		_, found, err := cache.Get(context.Background(), "k")
		Expect(err).To(MatchError(ContainSubstring("get roast")))
		Expect(found).To(BeFalse())
	})

	It("wraps transport failures on Set", func() {
		err := cache.Set(context.Background(), "k", "roast")
		Expect(err).To(MatchError(ContainSubstring("set roast")))
	})
})

var _ = Describe("NewRedisClient", func() {
	It("rejects a malformed url", func() {
		_, err := store.NewRedisClient(context.Background(), "not-a-redis-url")
		Expect(err).To(MatchError(ContainSubstring("parse redis url")))
	})
})

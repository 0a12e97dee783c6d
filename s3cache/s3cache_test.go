/* Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3cache

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/gregjones/httpcache/test"
)

// matches testBucket; internal imports this package
const testBucket = "bopmatic-ozarkvalley-pairbot-prod-webcache"

func TestS3Cache(t *testing.T) {
	// Initialize S3-backed cache
	cache := New(context.Background(), testBucket, false, nil)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			testBucket, err))
	}

	test.Cache(t, cache)
}

func TestS3CacheWithGzip(t *testing.T) {
	// Initialize S3-backed cache
	cache := New(context.Background(), testBucket, true, nil)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			testBucket, err))
	}

	test.Cache(t, cache)
}

func TestObjectKeys(t *testing.T) {
	plain := New(context.Background(), "b", false, nil)
	zipped := New(context.Background(), "b", true, nil)

	k1 := plain.cacheKeyToObjectKey("https://example.org/ozark")
	k2 := plain.cacheKeyToObjectKey("https://example.org/ozark")
	if k1 != k2 {
		t.Errorf("cache keys not stable: %v != %v", k1, k2)
	}
	if !strings.HasPrefix(k1, "/s3cache/") {
		t.Errorf("unexpected cache key %v", k1)
	}
	if got := plain.objectKey("events/cup.json"); got != "events/cup.json" {
		t.Errorf("objectKey = %v", got)
	}
	if got := zipped.objectKey("events/cup.json"); got != "events/cup.json.gz" {
		t.Errorf("objectKey = %v", got)
	}
	if plain.Bucket() != "b" {
		t.Errorf("Bucket = %v", plain.Bucket())
	}
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent        = "ozarkvalley-pairbot/0.3.0 (+https://github.com/mikeb26/ozarkvalley-pairbot)"
	EventBucket      = "bopmatic-ozarkvalley-pairbot-prod-events"
	WebCacheBucket   = "bopmatic-ozarkvalley-pairbot-prod-webcache"
	DefaultEventFile = "event.yaml"
	DefaultConfFile  = "ovpair.hcl"
)

/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache stores objects in Amazon S3. Cache implements
 * httpcache.Cache so fetched roster pages survive restarts, and its Fetch and
 * Put methods back the S3 event store. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use the more modern
 * aws-sdk-go-v2 and golang standard library functions
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by Fetch when the object does not exist.
var ErrNotFound = errors.New("s3cache: object not found")

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client the cache should used when interacting with S3.
	// By default this is initialized in Init() with the default Config, but
	// callers can optionally override this with their own s3 client if desired.
	Client *s3.Client

	// bucketName is the name of the S3 bucket in Amazon S3
	bucketName string

	// gzip indicates whether objects should be gzipped in Put and gunzipped
	// in Fetch. If true, object keys will have the suffix ".gz" appended.
	gzip bool

	// logger receives errors swallowed by the httpcache.Cache methods; nil
	// disables logging
	logger *log.Logger

	// The context to specify when initiating s3 requests from the
	// httpcache.Cache methods, which carry no context of their own
	ctx context.Context
}

// Get implements httpcache.Cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := c.Fetch(c.ctx, c.cacheKeyToObjectKey(key))
	if err != nil {
		// no such key just indicates a cache miss
		if !errors.Is(err, ErrNotFound) {
			c.logf("s3cache.get: %v", err)
		}
		return []byte{}, false
	}
	return data, true
}

// Set implements httpcache.Cache.
func (c *Cache) Set(key string, data []byte) {
	if err := c.Put(c.ctx, c.cacheKeyToObjectKey(key), data); err != nil {
		c.logf("s3cache.set: %v", err)
	}
}

// Delete implements httpcache.Cache.
func (c *Cache) Delete(key string) {
	if err := c.Remove(c.ctx, c.cacheKeyToObjectKey(key)); err != nil {
		c.logf("s3cache.delete: %v", err)
	}
}

// Fetch reads the object stored under objKey, returning ErrNotFound when it
// does not exist.
func (c *Cache) Fetch(ctx context.Context, objKey string) ([]byte, error) {
	objKey = c.objectKey(objKey)
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	}

	resp, err := c.Client.GetObject(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %v/%v", ErrNotFound, c.bucketName,
				objKey)
		}
		return nil, fmt.Errorf("failed to get object %v/%v: %w",
			c.bucketName, objKey, err)
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if c.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("failed to open compressed object %v/%v: %w",
				c.bucketName, objKey, err)
		}
		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %v/%v: %w",
			c.bucketName, objKey, err)
	}

	return data, nil
}

// Put stores data under objKey, compressing it first when gzip is enabled.
func (c *Cache) Put(ctx context.Context, objKey string, data []byte) error {
	objKey = c.objectKey(objKey)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("failed to gzip data for %v/%v: %w",
				c.bucketName, objKey, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("failed to close gzip writer for %v/%v: %w",
				c.bucketName, objKey, err)
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put failed for %v/%v: %w", c.bucketName, objKey,
			err)
	}
	return nil
}

// Remove deletes the object stored under objKey.
func (c *Cache) Remove(ctx context.Context, objKey string) error {
	objKey = c.objectKey(objKey)
	_, err := c.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		return fmt.Errorf("delete failed for %v/%v: %w", c.bucketName, objKey,
			err)
	}
	return nil
}

func (c *Cache) Bucket() string {
	return c.bucketName
}

func (c *Cache) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Warnf(format, args...)
	}
}

func (c *Cache) objectKey(key string) string {
	if c.gzip {
		return key + ".gz"
	}
	return key
}

func (c *Cache) cacheKeyToObjectKey(key string) string {
	const PathPrefix = "s3cache"

	h := md5.New()
	io.WriteString(h, key)
	return fmt.Sprintf("/%v/%v", PathPrefix, hex.EncodeToString(h.Sum(nil)))
}

// New returns a new Cache with underlying storage in the specified Amazon S3
// bucket. Additionally, specify whether objects persisted in the cache should
// be compressed with gzip or not. Callers should take care to invoke Init() on
// the returned Cache object before use
func New(ctxIn context.Context, bucketNameIn string, gzipIn bool,
	loggerIn *log.Logger) *Cache {

	return &Cache{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		gzip:       gzipIn,
		logger:     loggerIn,
	}
}

// The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
// To use different credentials, modify the returned Cache object's
// Config and Client fields.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	// Permission check: verify bucket exists and is accessible
	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w", c.bucketName, err)
	}

	// Permission check: verify ability to list objects (read/list permissions)
	if _, err = c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w", c.bucketName, err)
	}

	return nil
}

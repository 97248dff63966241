/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package s3cache provides an httpcache.Cache whose entries are objects in an
// Amazon S3 bucket. Keys map to readable object names under a fixed prefix so
// a stored roster can be inspected or restored with ordinary S3 tooling.
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const objectPrefix = "courtbot"

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Client is initialized by Init from the default AWS configuration chain;
	// callers may replace it afterwards.
	Client *s3.Client

	bucketName string
	gzip       bool
	ctx        context.Context
}

// New returns a Cache over bucketName. When gzipIn is set, entries are
// compressed on Set and object names get a ".gz" suffix. Init must be called
// before use.
func New(ctxIn context.Context, bucketNameIn string, gzipIn bool) *Cache {
	return &Cache{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		gzip:       gzipIn,
	}
}

// Init loads AWS credentials from the environment, shared config files or
// instance role, and verifies that the bucket is reachable.
func (c *Cache) Init() error {
	cfg, err := config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(cfg)

	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.bucketName, err)
	}

	return nil
}

// Get returns the entry for key. A missing object is a plain miss; other
// failures are logged and also reported as a miss.
func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.objectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		if !isNoSuchKey(err) {
			log.Printf("s3cache.get: failed to get %v/%v: %v", c.bucketName,
				objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	rdr := io.Reader(resp.Body)
	if c.gzip {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			log.Printf("s3cache.get: failed to open compressed %v/%v: %v",
				c.bucketName, objKey, err)
			return nil, false
		}
		defer gz.Close()
		rdr = gz
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		log.Printf("s3cache.get: failed to read %v/%v: %v", c.bucketName,
			objKey, err)
		return nil, false
	}

	return data, true
}

// Set stores data under key, replacing any previous object.
func (c *Cache) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(c.objectKey(key)),
		ContentType: aws.String("application/json"),
		Body:        bytes.NewReader(data),
	}

	if c.gzip {
		body, err := compress(data)
		if err != nil {
			log.Printf("s3cache.set: failed to gzip %v/%v: %v", c.bucketName,
				*input.Key, err)
			return
		}
		input.Body = body
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		log.Printf("s3cache.set: put failed for %v/%v: %v", c.bucketName,
			*input.Key, err)
	}
}

func (c *Cache) Delete(key string) {
	objKey := c.objectKey(key)
	_, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		log.Printf("s3cache.delete: delete failed for %v/%v: %v", c.bucketName,
			objKey, err)
	}
}

func (c *Cache) objectKey(key string) string {
	objKey := fmt.Sprintf("%v/%v.json", objectPrefix, url.PathEscape(key))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}

func compress(data []byte) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}

	return &buf, nil
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

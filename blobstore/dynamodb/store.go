package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/hupe1980/johari/blobstore"
)

const (
	attrNamespace = "namespace"
	attrName      = "name"
	attrData      = "data"
	attrExpires   = "expires"

	lockSuffix = ".lock"
)

// Client is the subset of the DynamoDB API used by Store.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store implements blobstore.BlobStore on a DynamoDB table.
type Store struct {
	client    Client
	table     string
	namespace string

	// LeaseTTL bounds how long an abandoned lock blocks other writers.
	LeaseTTL time.Duration
	// RetryInterval is the wait between lock attempts.
	RetryInterval time.Duration

	now func() time.Time
}

// New loads the default AWS configuration and creates a Store.
func New(ctx context.Context, table, namespace, region string) (*Store, error) {
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewStore(dynamodb.NewFromConfig(cfg), table, namespace), nil
}

// NewStore creates a Store whose items live under the given namespace partition.
func NewStore(client Client, table, namespace string) *Store {
	return &Store{
		client:        client,
		table:         table,
		namespace:     namespace,
		LeaseTTL:      30 * time.Second,
		RetryInterval: 50 * time.Millisecond,
		now:           time.Now,
	}
}

func (s *Store) key(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrNamespace: &types.AttributeValueMemberS{Value: s.namespace},
		attrName:      &types.AttributeValueMemberS{Value: name},
	}
}

// Open reads the item with a strongly consistent read.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(name),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get %q: %w", name, err)
	}
	if len(resp.Item) == 0 {
		return nil, blobstore.ErrNotFound
	}

	data, ok := resp.Item[attrData].(*types.AttributeValueMemberB)
	if !ok {
		return nil, fmt.Errorf("dynamodb item %q: missing binary %q attribute", name, attrData)
	}
	return blobstore.NewBytesBlob(data.Value), nil
}

// Put replaces the item. Single-item writes are atomic.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	item := s.key(name)
	item[attrData] = &types.AttributeValueMemberB{Value: data}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put %q: %w", name, err)
	}
	return nil
}

// Delete removes the item. Deleting a missing item succeeds.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(name),
	})
	if err != nil {
		return fmt.Errorf("dynamodb delete %q: %w", name, err)
	}
	return nil
}

// List queries the namespace partition for names beginning with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	input := &dynamodb.QueryInput{
		TableName:                aws.String(s.table),
		KeyConditionExpression:   aws.String("#ns = :ns AND begins_with(#n, :p)"),
		ProjectionExpression:     aws.String("#n"),
		ExpressionAttributeNames: map[string]string{"#ns": attrNamespace, "#n": attrName},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ns": &types.AttributeValueMemberS{Value: s.namespace},
			":p":  &types.AttributeValueMemberS{Value: prefix},
		},
	}

	var names []string
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb query: %w", err)
		}
		for _, item := range page.Items {
			attr, ok := item[attrName].(*types.AttributeValueMemberS)
			if !ok || strings.HasSuffix(attr.Value, lockSuffix) {
				continue
			}
			names = append(names, attr.Value)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Lock acquires a lease item "<name>.lock" with a conditional write. The lease
// carries a random token. An expired lease may be taken over. The returned unlock deletes the lease only while it
// is still ours.
func (s *Store) Lock(ctx context.Context, name string) (func() error, error) {
	lockName := name + lockSuffix
	token := uuid.NewString()

	for {
		now := s.now()
		item := s.key(lockName)
		item[attrExpires] = &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Add(s.LeaseTTL).UnixMilli(), 10)}
		item[attrData] = &types.AttributeValueMemberB{Value: []byte(token)}

		_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                aws.String(s.table),
			Item:                     item,
			ConditionExpression:      aws.String("attribute_not_exists(#n) OR #e < :now"),
			ExpressionAttributeNames: map[string]string{"#n": attrName, "#e": attrExpires},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.UnixMilli(), 10)},
			},
		})
		if err == nil {
			break
		}

		var condErr *types.ConditionalCheckFailedException
		if !errors.As(err, &condErr) {
			return nil, fmt.Errorf("dynamodb lock %q: %w", name, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.RetryInterval):
		}
	}

	return func() error {
		_, err := s.client.DeleteItem(context.Background(), &dynamodb.DeleteItemInput{
			TableName:                aws.String(s.table),
			Key:                      s.key(lockName),
			ConditionExpression:      aws.String("#d = :token"),
			ExpressionAttributeNames: map[string]string{"#d": attrData},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":token": &types.AttributeValueMemberB{Value: []byte(token)},
			},
		})
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil
		}
		return err
	}, nil
}

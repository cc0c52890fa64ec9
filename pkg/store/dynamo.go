package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/user-file-service/pkg/user"
)

// DynamoAPI é o subconjunto do cliente DynamoDB usado pelo store.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoTarget localiza o item que guarda o documento.
type DynamoTarget struct {
	Table string
	// Key é o valor da partition key do item.
	Key string
	// PKName é o nome do atributo de partition key (padrão "id").
	PKName string
	// Column é o atributo onde o JSON é salvo (padrão "data").
	Column string
}

// DynamoStore guarda a coleção inteira como um atributo string de um único item.
type DynamoStore struct {
	client DynamoAPI
	target DynamoTarget
}

func NewDynamoStore(client DynamoAPI, target DynamoTarget) *DynamoStore {
	if target.PKName == "" {
		target.PKName = "id"
	}
	if target.Column == "" {
		target.Column = "data"
	}
	return &DynamoStore{client: client, target: target}
}

func (s *DynamoStore) source() string {
	return fmt.Sprintf("dynamodb://%s/%s", s.target.Table, s.target.Key)
}

func (s *DynamoStore) Load(ctx context.Context) (user.Collection, error) {
	// lê só o atributo do documento; o nome passa por placeholder porque
	// "data" é palavra reservada no DynamoDB
	proj, err := expression.NewBuilder().
		WithProjection(expression.NamesList(expression.Name(s.target.Column))).
		Build()
	if err != nil {
		return nil, &user.IOError{Op: "read", Source: s.source(), Err: err}
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.target.Table),
		Key: map[string]types.AttributeValue{
			s.target.PKName: &types.AttributeValueMemberS{Value: s.target.Key},
		},
		ProjectionExpression:     proj.Projection(),
		ExpressionAttributeNames: proj.Names(),
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return nil, &user.IOError{Op: "read", Source: s.source(), Err: err}
	}
	if out.Item == nil {
		return user.Collection{}, nil
	}

	attr, ok := out.Item[s.target.Column]
	if !ok {
		return user.Collection{}, nil
	}

	var doc string
	if err := attributevalue.Unmarshal(attr, &doc); err != nil {
		return nil, &user.DecodeError{Source: s.source(), Err: err}
	}
	return decode([]byte(doc), s.source())
}

func (s *DynamoStore) Save(ctx context.Context, c user.Collection) error {
	data, err := encode(c)
	if err != nil {
		return &user.IOError{Op: "write", Source: s.source(), Err: err}
	}

	item, err := attributevalue.MarshalMap(map[string]string{
		s.target.PKName: s.target.Key,
		s.target.Column: string(data),
	})
	if err != nil {
		return &user.IOError{Op: "write", Source: s.source(), Err: err}
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.target.Table),
		Item:      item,
	}); err != nil {
		return &user.IOError{Op: "write", Source: s.source(), Err: err}
	}
	return nil
}

package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/talenthub/talenthub/internal/common"
	"github.com/talenthub/talenthub/internal/server/config"
	"github.com/talenthub/talenthub/internal/server/models"
)

// idIndex is the GSI that resolves a user id back to the email key.
const idIndex = "id-index"

// dynamoUser is the storage shape of a user record. The table is keyed
// by normalized email; CreatedAt travels as RFC 3339 text.
type dynamoUser struct {
	Email          string   `dynamodbav:"email"`
	ID             string   `dynamodbav:"id"`
	PasswordHash   string   `dynamodbav:"password_hash"`
	FullName       string   `dynamodbav:"full_name"`
	Role           string   `dynamodbav:"role"`
	CollegeName    string   `dynamodbav:"college_name,omitempty"`
	GraduationYear string   `dynamodbav:"graduation_year,omitempty"`
	Skills         []string `dynamodbav:"skills,omitempty"`
	LinkedinURL    string   `dynamodbav:"linkedin_url,omitempty"`
	GithubURL      string   `dynamodbav:"github_url,omitempty"`
	IsActive       bool     `dynamodbav:"is_active"`
	CreatedAt      string   `dynamodbav:"created_at"`
}

func toDynamo(u *models.User) *dynamoUser {
	return &dynamoUser{
		Email:          u.Email,
		ID:             u.ID,
		PasswordHash:   u.PasswordHash,
		FullName:       u.FullName,
		Role:           u.Role,
		CollegeName:    u.CollegeName,
		GraduationYear: u.GraduationYear,
		Skills:         u.Skills,
		LinkedinURL:    u.LinkedinURL,
		GithubURL:      u.GithubURL,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromDynamo(d *dynamoUser) (*models.User, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &models.User{
		ID:             d.ID,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		FullName:       d.FullName,
		Role:           d.Role,
		CollegeName:    d.CollegeName,
		GraduationYear: d.GraduationYear,
		Skills:         d.Skills,
		LinkedinURL:    d.LinkedinURL,
		GithubURL:      d.GithubURL,
		IsActive:       d.IsActive,
		CreatedAt:      createdAt,
	}, nil
}

// NewDynamoDBClient builds the durable-backend client once at startup
// from the configured region and credentials. When no static credentials
// are configured the SDK's default chain applies. The client is treated
// as read-only state for the process lifetime.
func NewDynamoDBClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DDBBaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DDBBaseEndpoint)
		}
	})
	return client, nil
}

// DynamoDBRepository is the durable directory tier.
type DynamoDBRepository struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoDBRepository(client *dynamodb.Client, table string) *DynamoDBRepository {
	return &DynamoDBRepository{client: client, table: table}
}

// Put inserts a record. The conditional expression makes the uniqueness
// check atomic on the backend: a concurrent insert for the same email
// loses with common.ErrAlreadyExists.
func (r *DynamoDBRepository) Put(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(toDynamo(user))
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *DynamoDBRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrNotFound
	}

	du := &dynamoUser{}
	if err := attributevalue.UnmarshalMap(out.Item, du); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return fromDynamo(du)
}

func (r *DynamoDBRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	email, err := r.emailForID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.GetByEmail(ctx, email)
}

// Update applies a partial profile update. The id is resolved to the
// email key through the GSI first, then a single UpdateItem carries the
// changed attributes.
func (r *DynamoDBRepository) Update(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	email, err := r.emailForID(ctx, id)
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	var sets []string
	set := func(attr string, av types.AttributeValue) {
		name := fmt.Sprintf("#a%d", len(sets))
		value := fmt.Sprintf(":v%d", len(sets))
		names[name] = attr
		values[value] = av
		sets = append(sets, name+" = "+value)
	}

	if upd.FullName != nil {
		set("full_name", &types.AttributeValueMemberS{Value: *upd.FullName})
	}
	if upd.CollegeName != nil {
		set("college_name", &types.AttributeValueMemberS{Value: *upd.CollegeName})
	}
	if upd.GraduationYear != nil {
		set("graduation_year", &types.AttributeValueMemberS{Value: *upd.GraduationYear})
	}
	if upd.Skills != nil {
		av, err := attributevalue.Marshal(*upd.Skills)
		if err != nil {
			return nil, fmt.Errorf("marshal skills: %w", err)
		}
		set("skills", av)
	}
	if upd.LinkedinURL != nil {
		set("linkedin_url", &types.AttributeValueMemberS{Value: *upd.LinkedinURL})
	}
	if upd.GithubURL != nil {
		set("github_url", &types.AttributeValueMemberS{Value: *upd.GithubURL})
	}
	if len(sets) == 0 {
		return r.GetByEmail(ctx, email)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String("attribute_exists(email)"),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	du := &dynamoUser{}
	if err := attributevalue.UnmarshalMap(out.Attributes, du); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return fromDynamo(du)
}

func (r *DynamoDBRepository) emailForID(ctx context.Context, id string) (string, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(idIndex),
		KeyConditionExpression: aws.String("#id = :id"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	if len(out.Items) == 0 {
		return "", common.ErrNotFound
	}

	du := &dynamoUser{}
	if err := attributevalue.UnmarshalMap(out.Items[0], du); err != nil {
		return "", fmt.Errorf("unmarshal user: %w", err)
	}
	return du.Email, nil
}

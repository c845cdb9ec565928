package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/spec-kit/bank-crm-service/internal/config"
	apperrors "github.com/spec-kit/bank-crm-service/pkg/util"
)

// CognitoGateway implements Gateway against an AWS Cognito user pool.
type CognitoGateway struct {
	client     *cognitoidentityprovider.Client
	userPoolID string
}

// NewCognitoGateway builds the client from service configuration. Static
// credentials take precedence over the default chain (useful for local
// cognito emulators via the endpoint override).
func NewCognitoGateway(ctx context.Context, cfg config.CognitoConfig) (*CognitoGateway, error) {
	var awsCfg aws.Config
	var err error

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := cognitoidentityprovider.NewFromConfig(awsCfg, func(o *cognitoidentityprovider.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &CognitoGateway{client: client, userPoolID: cfg.UserPoolID}, nil
}

// CreateUser registers the identity and returns the provider-assigned "sub".
// MessageAction SUPPRESS keeps Cognito from sending its own welcome email;
// notifications are this service's job.
func (g *CognitoGateway) CreateUser(ctx context.Context, email, temporaryPassword string, attrs UserAttributes) (string, error) {
	out, err := g.client.AdminCreateUser(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId:        aws.String(g.userPoolID),
		Username:          aws.String(email),
		TemporaryPassword: aws.String(temporaryPassword),
		MessageAction:     types.MessageActionTypeSuppress,
		UserAttributes:    toAttributeTypes(attrs),
	})
	if err != nil {
		return "", classify("create user", err)
	}

	if out.User != nil {
		for _, attr := range out.User.Attributes {
			if aws.ToString(attr.Name) == "sub" {
				return aws.ToString(attr.Value), nil
			}
		}
	}
	return "", apperrors.NewInconsistentState(
		"identity provider returned no subject identifier",
		map[string]any{"email": email},
		nil,
	)
}

func (g *CognitoGateway) AddUserToGroup(ctx context.Context, email, group string) error {
	_, err := g.client.AdminAddUserToGroup(ctx, &cognitoidentityprovider.AdminAddUserToGroupInput{
		UserPoolId: aws.String(g.userPoolID),
		Username:   aws.String(email),
		GroupName:  aws.String(group),
	})
	if err != nil {
		return classify("add user to group", err)
	}
	return nil
}

func (g *CognitoGateway) UpdateUserAttributes(ctx context.Context, email string, attrs UserAttributes) error {
	_, err := g.client.AdminUpdateUserAttributes(ctx, &cognitoidentityprovider.AdminUpdateUserAttributesInput{
		UserPoolId:     aws.String(g.userPoolID),
		Username:       aws.String(email),
		UserAttributes: toAttributeTypes(attrs),
	})
	if err != nil {
		return classify("update user attributes", err)
	}
	return nil
}

func (g *CognitoGateway) SetUserPassword(ctx context.Context, email, password string) error {
	_, err := g.client.AdminSetUserPassword(ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: aws.String(g.userPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  true,
	})
	if err != nil {
		return classify("set user password", err)
	}
	return nil
}

func toAttributeTypes(attrs UserAttributes) []types.AttributeType {
	return []types.AttributeType{
		{Name: aws.String("email"), Value: aws.String(attrs.Email)},
		{Name: aws.String("given_name"), Value: aws.String(attrs.GivenName)},
		{Name: aws.String("family_name"), Value: aws.String(attrs.FamilyName)},
	}
}

// classify splits SDK failures into the rejection/unavailability taxonomy.
// Anything not recognizably a request problem is treated as transient.
func classify(op string, err error) error {
	var usernameExists *types.UsernameExistsException
	var invalidPassword *types.InvalidPasswordException
	var invalidParameter *types.InvalidParameterException
	var userNotFound *types.UserNotFoundException
	var groupNotFound *types.ResourceNotFoundException

	switch {
	case errors.As(err, &usernameExists),
		errors.As(err, &invalidPassword),
		errors.As(err, &invalidParameter),
		errors.As(err, &userNotFound),
		errors.As(err, &groupNotFound):
		return apperrors.NewProviderRejected(fmt.Sprintf("identity provider rejected %s", op), err)
	default:
		return apperrors.NewProviderUnavailable(fmt.Sprintf("identity provider failed during %s", op), err)
	}
}

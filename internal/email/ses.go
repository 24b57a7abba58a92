package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"zentra-api/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

const inviteTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>Zentra</h1>
  <h2>You have been invited!</h2>
  <p><strong>{{.InviterName}}</strong> invited you to join the project
     <strong>"{{.ProjectName}}"</strong> as <strong>{{.RoleText}}</strong>.</p>
  <p><a href="{{.InviteLink}}">Accept invitation</a></p>
  <p>This link expires in 7 days. If you do not have a Zentra account yet,
     you will be asked to create one first.</p>
</div>`

type inviteTemplateData struct {
	ProjectName string
	InviterName string
	RoleText    string
	InviteLink  string
}

// SESSink sends invitation emails through AWS SES v2.
type SESSink struct {
	client *sesv2.Client
	from   string
	tmpl   *template.Template
}

func NewSESSink(ctx context.Context, from string) (*SESSink, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}

	tmpl, err := template.New("invite").Parse(inviteTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invite template: %v", err)
	}

	return &SESSink{
		client: sesv2.NewFromConfig(cfg),
		from:   from,
		tmpl:   tmpl,
	}, nil
}

func (s *SESSink) SendInviteEmail(ctx context.Context, invite InviteEmail) (Result, error) {
	roleText := "Collaborator"
	if invite.Role == models.RoleAdmin {
		roleText = "Administrator"
	}

	var body bytes.Buffer
	err := s.tmpl.Execute(&body, inviteTemplateData{
		ProjectName: invite.ProjectName,
		InviterName: invite.InviterName,
		RoleText:    roleText,
		InviteLink:  invite.InviteLink,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to render invite email: %v", err)
	}

	subject := fmt.Sprintf("You were invited to the project %q", invite.ProjectName)
	output, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{invite.Email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(body.String())},
				},
			},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to send invite email: %w", err)
	}
	if output.MessageId == nil {
		return Result{}, fmt.Errorf("SES returned no message id")
	}

	return Result{Success: true, MessageID: *output.MessageId}, nil
}

package resend

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	resend "github.com/resend/resend-go/v2"
	"golang.org/x/xerrors"
)

const DefaultFrom = "onboarding@resend.dev"

// Service sends digest e-mails through Resend.
type Service struct {
	resendClient *resend.Client
	from         string
}

func NewService(apiKey, from string) *Service {
	if from == "" {
		from = DefaultFrom
	}
	return &Service{
		resendClient: resend.NewClient(apiKey),
		from:         from,
	}
}

func (s *Service) SendDigest(ctx context.Context, to string, digest Digest) error {
	body, err := RenderDigest(digest)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: fmt.Sprintf("Olympic medal events %s", digest.Date),
		Html:    body,
	}

	sent, err := s.resendClient.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Failed to send digest to %s: %v\n", to, err)
		return xerrors.Errorf("sending digest: %w", err)
	}
	log.Printf("Sent digest %s with %d events\n", sent.Id, len(digest.Events))
	return nil
}

var digestTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .event {
            border-bottom: 1px solid #eeeeee;
            padding: 10px 0;
        }
        .meta {
            color: #777777;
            font-size: 13px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>Medal events {{.Date}}</h2>
        {{- range .Events}}
        <div class="event">
            <h3>{{.Discipline}}: {{.Event}}</h3>
            <p class="meta">{{.Venue}}{{if .EndedAgo}}, ended {{.EndedAgo}}{{end}}</p>
            <ul>
            {{- range .Results}}
                <li>{{.Country}} {{.Name}}: {{.Outcome}}{{if .Mark}} ({{.Mark}}){{end}}</li>
            {{- end}}
            </ul>
        </div>
        {{- else}}
        <p>No medal events have finished yet today.</p>
        {{- end}}
    </div>
</body>
</html>`))

// RenderDigest renders the digest as an HTML e-mail body.
func RenderDigest(digest Digest) (string, error) {
	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, digest); err != nil {
		return "", xerrors.Errorf("rendering digest: %w", err)
	}
	return buf.String(), nil
}

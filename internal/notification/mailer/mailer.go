package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"taskflow_realtime/internal/notification/domain"

	"github.com/google/uuid"
)

// Mailer hand an email to the out-of-process mail worker; returns the job id
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) (string, error)
	Close() error
}

// Sender From header parts
type Sender struct {
	Name    string
	Address string
}

func (s Sender) job(to, subject, body string) (domain.EmailJob, []byte, error) {
	job := domain.NewEmailJob(uuid.NewString(), s.Name, s.Address, to, subject, body)
	data, err := json.Marshal(job)
	if err != nil {
		return job, nil, fmt.Errorf("marshal email job: %w", err)
	}
	return job, data, nil
}

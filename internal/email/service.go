package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"allyoucangym/internal/logger"
	"allyoucangym/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
	timeLayout     = "Jan 2, 2006 at 3:04 PM"
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Options struct {
	From     string
	FromName string
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

type Service struct {
	redis      *redis.Client
	opts       Options
	retryDelay time.Duration
	sender     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(opts Options, redisAddr string) *Service {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: redisAddr}), opts)
}

func NewWithClient(rdb *redis.Client, opts Options) *Service {
	return &Service{redis: rdb, opts: opts, retryDelay: 5 * time.Second, sender: smtp.SendMail}
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	return s.enqueue(ctx, EmailJob{To: to, Name: name, Type: "generic", Subject: subject, Body: body})
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", job.To, err)
		metrics.RecordEmail(job.Type, "queue_failed")
		return err
	}

	metrics.RecordEmail(job.Type, "queued")
	logger.Info("Email queued", "type", job.Type, "to", job.To)
	return nil
}

// Start consumes the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s (attempt %d): %v", job.To, job.Tries, err)

		if job.Tries < maxTries {
			select {
			case <-ctx.Done():
			case <-time.After(s.retryDelay):
			}
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, string(data))
			return
		}

		metrics.RecordEmail(job.Type, "failed")
		s.saveFailed(job, err)
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.opts.FromName, s.opts.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.opts.SMTPUser != "" && s.opts.SMTPPass != "" {
		auth = smtp.PlainAuth("", s.opts.SMTPUser, s.opts.SMTPPass, s.opts.SMTPHost)
	}

	addr := s.opts.SMTPHost + ":" + s.opts.SMTPPort
	return s.sender(addr, auth, s.opts.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, string(data))
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.SetEmailQueueLength(length)
	return length
}

func (s *Service) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendBookingConfirmation(ctx context.Context, to, name, sessionName string, when time.Time) error {
	body := fmt.Sprintf(`Hi %s,

Your spot is booked!

Session: %s
Time: %s

See you at the gym!

- %s`, name, sessionName, when.Format(timeLayout), s.opts.FromName)

	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Type:    "booking_confirmation",
		Subject: "Booking Confirmed - " + sessionName,
		Body:    body,
	})
}

func (s *Service) SendCancellation(ctx context.Context, to, name, sessionName string) error {
	body := fmt.Sprintf(`Hi %s,

Your booking has been cancelled:

Session: %s

- %s`, name, sessionName, s.opts.FromName)

	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Type:    "booking_cancellation",
		Subject: "Booking Cancelled - " + sessionName,
		Body:    body,
	})
}

func (s *Service) SendPaymentReceipt(ctx context.Context, to, name, packageName, transactionID string, amountCents int64) error {
	body := fmt.Sprintf(`Hi %s,

Thanks for your purchase!

Package: %s
Amount: %d.%02d
Transaction: %s

- %s`, name, packageName, amountCents/100, amountCents%100, transactionID, s.opts.FromName)

	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Type:    "payment_receipt",
		Subject: "Payment Receipt - " + packageName,
		Body:    body,
	})
}

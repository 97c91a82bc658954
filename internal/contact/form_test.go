package contact_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jominkmathew/neonfolio/internal/contact"
)

var valid = contact.Message{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Body: "Let's talk"}

var _ = Describe("Form", func() {
	var (
		form  *contact.Form
		sends int
		fail  error
		t0    time.Time
	)

	BeforeEach(func() {
		sends = 0
		fail = nil
		t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		form = contact.NewForm(contact.MailerFunc(func(ctx context.Context, m contact.Message) error {
			sends++
			return fail
		}))
		form.Fields = valid
	})

	submit := func() error {
		m, err := form.Submit()
		if err != nil {
			return err
		}
		return form.Transmit(context.Background(), m)
	}

	It("starts idle with the default label", func() {
		Expect(form.State()).To(Equal(contact.Idle))
		Expect(form.ButtonEnabled()).To(BeTrue())
		Expect(form.ButtonLabel()).To(Equal("TRANSMIT MESSAGE"))
		Expect(form.Status()).To(BeEmpty())
	})

	It("rejects incomplete fields without sending", func() {
		form.Fields.Email = "not-an-email"
		_, err := form.Submit()
		Expect(err).To(MatchError(contact.ErrInvalid))
		Expect(form.State()).To(Equal(contact.Idle))
		Expect(sends).To(BeZero())
	})

	It("disables the button while transmitting and refuses double submits", func() {
		_, err := form.Submit()
		Expect(err).NotTo(HaveOccurred())
		Expect(form.ButtonEnabled()).To(BeFalse())
		Expect(form.ButtonLabel()).To(Equal("TRANSMITTING..."))

		_, err = form.Submit()
		Expect(err).To(MatchError(contact.ErrBusy))
	})

	It("clears fields on success and resets after the delay", func() {
		form.Complete(submit(), t0)
		Expect(form.State()).To(Equal(contact.Sent))
		Expect(form.Status()).To(Equal(contact.StatusSent))
		Expect(form.Fields).To(Equal(contact.Message{}))

		Expect(form.Expire(t0.Add(contact.ResetDelay - time.Millisecond))).To(BeFalse())
		Expect(form.Expire(t0.Add(contact.ResetDelay))).To(BeTrue())
		Expect(form.ButtonLabel()).To(Equal("TRANSMIT MESSAGE"))
	})

	It("leaves the button enabled after a simulated rejection", func() {
		fail = errors.New("relay down")
		form.Complete(submit(), t0)

		Expect(form.State()).To(Equal(contact.Failed))
		Expect(form.ButtonLabel()).To(Equal("FAILED ✗"))
		Expect(form.Status()).To(Equal(contact.StatusFailed))
		Expect(form.Fields).To(Equal(valid))
		Expect(form.Err()).To(MatchError("relay down"))

		form.Expire(t0.Add(3000 * time.Millisecond))
		Expect(form.ButtonEnabled()).To(BeTrue())
		Expect(form.State()).NotTo(Equal(contact.Transmitting))
		Expect(form.ButtonLabel()).To(Equal("TRANSMIT MESSAGE"))
		Expect(sends).To(Equal(1))
	})

	It("ignores a stray completion while idle", func() {
		form.Complete(nil, t0)
		Expect(form.State()).To(Equal(contact.Idle))
		Expect(form.Expire(t0.Add(time.Hour))).To(BeFalse())
	})

	It("reports a missing mailer", func() {
		f := contact.NewForm(nil)
		f.Fields = valid
		m, err := f.Submit()
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Transmit(context.Background(), m)).To(MatchError(contact.ErrNotConfigured))
	})
})

var _ = Describe("EmailJS", func() {
	It("posts the identifiers and template params as JSON", func() {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			Expect(r.Method).To(Equal(http.MethodPost))
			Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
			Expect(json.NewDecoder(r.Body).Decode(&got)).To(Succeed())
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		relay := &contact.EmailJS{PublicKey: "pk", ServiceID: "svc", TemplateID: "tpl", Endpoint: srv.URL}
		Expect(relay.Send(context.Background(), valid)).To(Succeed())

		Expect(got).To(HaveKeyWithValue("service_id", "svc"))
		Expect(got).To(HaveKeyWithValue("template_id", "tpl"))
		Expect(got).To(HaveKeyWithValue("user_id", "pk"))
		Expect(got["template_params"]).To(HaveKeyWithValue("from_email", "ada@example.com"))
	})

	It("turns a non-2xx answer into a RelayError", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad template", http.StatusBadRequest)
		}))
		defer srv.Close()

		relay := &contact.EmailJS{PublicKey: "pk", ServiceID: "svc", TemplateID: "tpl", Endpoint: srv.URL}
		err := relay.Send(context.Background(), valid)

		var re *contact.RelayError
		Expect(errors.As(err, &re)).To(BeTrue())
		Expect(re.Status).To(Equal(http.StatusBadRequest))
		Expect(re.Body).To(Equal("bad template"))
	})

	It("refuses to send without identifiers", func() {
		Expect((&contact.EmailJS{}).Send(context.Background(), valid)).To(MatchError(contact.ErrNotConfigured))
	})
})

package sse_test

import (
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/ssecodec/pkg/sse"
)

var _ = Describe("Message JSON", func() {
	Describe("MarshalJSON", func() {
		It("omits absent fields", func() {
			b, err := json.Marshal(sse.Message{Event: "e", Data: "x"})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(Equal(`{"event":"e","data":"x"}`))
		})

		It("encodes an empty message as an empty object", func() {
			b, err := json.Marshal(sse.Message{})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(Equal(`{}`))
		})
	})

	Describe("UnmarshalJSON", func() {
		It("decodes all fields", func() {
			var msg sse.Message
			err := json.Unmarshal([]byte(`{"event":"e","id":"1","data":{"a":[1,2]}}`), &msg)
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.Event).To(Equal("e"))
			Expect(msg.ID).To(Equal("1"))
			Expect(msg.Data).To(Equal(map[string]any{"a": []any{json.Number("1"), json.Number("2")}}))
		})

		It("treats null fields as absent", func() {
			var msg sse.Message
			err := json.Unmarshal([]byte(`{"event":null,"id":null,"data":"x"}`), &msg)
			Expect(err).NotTo(HaveOccurred())
			Expect(msg).To(Equal(sse.Message{Data: "x"}))
		})

		It("rejects a non-string id", func() {
			var msg sse.Message
			err := msg.UnmarshalJSON([]byte(`{"data":"x","id":{}}`))
			Expect(errors.Is(err, sse.ErrInvalidFieldType)).To(BeTrue())
		})

		It("rejects a non-string event", func() {
			var msg sse.Message
			err := msg.UnmarshalJSON([]byte(`{"data":"x","event":3}`))
			Expect(errors.Is(err, sse.ErrInvalidFieldType)).To(BeTrue())
		})

		It("rejects documents that are not objects", func() {
			var msg sse.Message
			err := msg.UnmarshalJSON([]byte(`"x"`))
			Expect(errors.Is(err, sse.ErrInvalidInputType)).To(BeTrue())
		})
	})
})

var _ = Describe("DecodeMessages", func() {
	It("decodes an array of messages", func() {
		msgs, err := sse.DecodeMessages([]byte(`[{"event":"e","id":"1","data":"x"},{"data":2}]`))
		Expect(err).NotTo(HaveOccurred())
		Expect(msgs).To(Equal([]sse.Message{
			{Event: "e", ID: "1", Data: "x"},
			{Data: json.Number("2")},
		}))
	})

	It("decodes an empty array", func() {
		msgs, err := sse.DecodeMessages([]byte(" [ ] "))
		Expect(err).NotTo(HaveOccurred())
		Expect(msgs).To(BeEmpty())
	})

	DescribeTable("rejects input that is not a list of objects",
		func(raw string) {
			_, err := sse.DecodeMessages([]byte(raw))
			Expect(errors.Is(err, sse.ErrInvalidInputType)).To(BeTrue())
		},
		Entry("string", `"not-a-list"`),
		Entry("object", `{"data":"x"}`),
		Entry("empty", ``),
		Entry("number element", `[1]`),
		Entry("null element", `[null]`),
	)

	It("reports the index of an invalid element", func() {
		_, err := sse.DecodeMessages([]byte(`[{"data":"x"},{"data":"x","id":{}}]`))
		Expect(errors.Is(err, sse.ErrInvalidFieldType)).To(BeTrue())
		Expect(err).To(MatchError(ContainSubstring("message 1")))
	})

	DescribeTable("reports missing data before a bad field type",
		func(raw string) {
			_, err := sse.DecodeMessages([]byte(raw))
			Expect(errors.Is(err, sse.ErrMissingData)).To(BeTrue())
			Expect(errors.Is(err, sse.ErrInvalidFieldType)).To(BeFalse())
		},
		Entry("absent data", `[{"id":{}}]`),
		Entry("null data", `[{"event":7,"data":null}]`),
		Entry("empty string data", `[{"id":[],"data":""}]`),
	)

	It("feeds the batch encoder", func() {
		msgs, err := sse.DecodeMessages([]byte(`[{"data":1.50},{"data":{"b":1,"a":2}},{"data":false}]`))
		Expect(err).NotTo(HaveOccurred())

		out, err := sse.StringifyAll(msgs, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("data: 1.50\n\ndata: {\"a\":2,\"b\":1}\n\ndata: false\n\n"))
	})

	It("surfaces missing data at encode time", func() {
		msgs, err := sse.DecodeMessages([]byte(`[{}]`))
		Expect(err).NotTo(HaveOccurred())

		_, err = sse.StringifyAll(msgs, nil)
		Expect(errors.Is(err, sse.ErrMissingData)).To(BeTrue())
	})
})

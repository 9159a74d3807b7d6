package messaging_test

import (
	"sync"
	"testing"

	"golang-food-gateway/pkg/messaging"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaProducer_GetWriterReusesWriter(t *testing.T) {
	producer := messaging.NewKafkaProducer([]string{"localhost:9092"})
	defer producer.Close()

	first := producer.GetWriter("order-events")
	second := producer.GetWriter("order-events")

	assert.Same(t, first, second)
	assert.Equal(t, "order-events", first.Topic)
	assert.Equal(t, kafka.TCP("localhost:9092").String(), first.Addr.String())
}

func TestKafkaProducer_GetWriterConcurrent(t *testing.T) {
	producer := messaging.NewKafkaProducer([]string{"localhost:9092"})
	defer producer.Close()

	// Checkouts from different users publish concurrently; first-writer
	// creation must not race on the topic map
	var wg sync.WaitGroup
	writers := make([]*kafka.Writer, 8)
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			writers[i] = producer.GetWriter("order-events")
		}(i)
	}
	wg.Wait()

	require.NotNil(t, writers[0])
	for _, writer := range writers[1:] {
		assert.Same(t, writers[0], writer)
	}
}

package db

import (
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/midiscope/model"
	"github.com/stretchr/testify/assert"
)

type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items       map[string]map[string]*dynamodb.AttributeValue
	batchSizes  []int
	unprocessed int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) BatchWriteItem(in *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
	out := &dynamodb.BatchWriteItemOutput{UnprocessedItems: map[string][]*dynamodb.WriteRequest{}}
	for table, reqs := range in.RequestItems {
		f.batchSizes = append(f.batchSizes, len(reqs))
		for _, r := range reqs {
			if f.unprocessed > 0 {
				f.unprocessed--
				out.UnprocessedItems[table] = append(out.UnprocessedItems[table], r)
				continue
			}
			f.items[*r.PutRequest.Item["PK"].S] = r.PutRequest.Item
		}
	}
	return out, nil
}

func (f *fakeDynamo) GetItem(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[*in.Key["PK"].S]}, nil
}

func sampleInfo(path string) model.MidiFileInfo {
	return model.MidiFileInfo{
		Name:            path,
		Path:            path,
		TrackCount:      2,
		EventCount:      40,
		Duration:        3 * time.Second,
		Format:          model.MultiTrack,
		TempoEventCount: 1,
		SysExCount:      3,
		Flags:           model.DetectionFlags{GS: true, GM1: true},
		Classification:  model.GS,
	}
}

func TestPutThenGet(t *testing.T) {
	fake := newFakeDynamo()
	store := NewReportStore(fake, "reports")
	info := sampleInfo("gs.mid")

	assert := assert.New(t)
	assert.NoError(store.PutReports([]model.MidiFileInfo{info}))

	got, ok, err := store.GetReport("gs.mid")
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(info, got)
}

func TestGetMissing(t *testing.T) {
	store := NewReportStore(newFakeDynamo(), "reports")
	_, ok, err := store.GetReport("nope.mid")

	assert := assert.New(t)
	assert.NoError(err)
	assert.False(ok)
}

func TestPutSplitsBatches(t *testing.T) {
	fake := newFakeDynamo()
	store := NewReportStore(fake, "reports")

	var infos []model.MidiFileInfo
	for i := 0; i < 60; i++ {
		infos = append(infos, sampleInfo(fmt.Sprintf("%02d.mid", i)))
	}

	assert := assert.New(t)
	assert.NoError(store.PutReports(infos))
	assert.Equal([]int{25, 25, 10}, fake.batchSizes)
	assert.Len(fake.items, 60)
}

func TestPutRetriesUnprocessed(t *testing.T) {
	fake := newFakeDynamo()
	fake.unprocessed = 2
	store := NewReportStore(fake, "reports")

	assert := assert.New(t)
	assert.NoError(store.PutReports([]model.MidiFileInfo{sampleInfo("a.mid"), sampleInfo("b.mid")}))
	assert.Equal([]int{2, 2}, fake.batchSizes)
	assert.Len(fake.items, 2)
}

func TestPutGivesUpAfterRetries(t *testing.T) {
	fake := newFakeDynamo()
	fake.unprocessed = 100
	store := NewReportStore(fake, "reports")

	err := store.PutReports([]model.MidiFileInfo{sampleInfo("a.mid")})
	assert.Error(t, err)
	assert.Len(t, fake.batchSizes, maxWriteAttempts)
}

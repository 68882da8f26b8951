package db

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/midiscope/constants"
	"github.com/jsphweid/midiscope/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const maxWriteAttempts = 3

type reportItem struct {
	PK              string               `dynamodbav:"PK"`
	Name            string               `dynamodbav:"Name"`
	TrackCount      int                  `dynamodbav:"TrackCount"`
	EventCount      int                  `dynamodbav:"EventCount"`
	DurationNanos   int64                `dynamodbav:"DurationNanos"`
	Format          string               `dynamodbav:"Format"`
	TempoEventCount int                  `dynamodbav:"TempoEventCount"`
	SysExCount      int                  `dynamodbav:"SysExCount"`
	Flags           model.DetectionFlags `dynamodbav:"Flags"`
	Classification  string               `dynamodbav:"Classification"`
	IsEmpty         bool                 `dynamodbav:"IsEmpty"`
}

func toItem(info model.MidiFileInfo) reportItem {
	return reportItem{
		PK:              info.Path,
		Name:            info.Name,
		TrackCount:      info.TrackCount,
		EventCount:      info.EventCount,
		DurationNanos:   int64(info.Duration),
		Format:          info.Format.String(),
		TempoEventCount: info.TempoEventCount,
		SysExCount:      info.SysExCount,
		Flags:           info.Flags,
		Classification:  string(info.Classification),
		IsEmpty:         info.IsEmpty,
	}
}

func fromItem(item reportItem) (model.MidiFileInfo, error) {
	var format model.Format
	if err := format.UnmarshalText([]byte(item.Format)); err != nil {
		return model.MidiFileInfo{}, err
	}
	return model.MidiFileInfo{
		Name:            item.Name,
		Path:            item.PK,
		TrackCount:      item.TrackCount,
		EventCount:      item.EventCount,
		Duration:        time.Duration(item.DurationNanos),
		Format:          format,
		TempoEventCount: item.TempoEventCount,
		SysExCount:      item.SysExCount,
		Flags:           item.Flags,
		Classification:  model.Classification(item.Classification),
		IsEmpty:         item.IsEmpty,
	}, nil
}

type ReportStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewReportStore(client dynamodbiface.DynamoDBAPI, table string) *ReportStore {
	return &ReportStore{client: client, table: table}
}

// Connect builds a store from the DYNAMODB_ENDPOINT, AWS_REGION and
// REPORT_TABLE settings.
func Connect() (*ReportStore, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Could not create a new DynamoDB session")
	}
	return NewReportStore(dynamodb.New(sess), constants.GetReportTable()), nil
}

// PutReports stores reports keyed by their path, overwriting older ones.
func (s *ReportStore) PutReports(infos []model.MidiFileInfo) error {
	for start := 0; start < len(infos); start += constants.MaxBatchWrite {
		end := start + constants.MaxBatchWrite
		if end > len(infos) {
			end = len(infos)
		}

		var requests []*dynamodb.WriteRequest
		for _, info := range infos[start:end] {
			av, err := dynamodbattribute.MarshalMap(toItem(info))
			if err != nil {
				return errors.Wrapf(err, "Could not marshal report for %s", info.Path)
			}
			requests = append(requests, &dynamodb.WriteRequest{
				PutRequest: &dynamodb.PutRequest{Item: av},
			})
		}
		if err := s.writeBatch(requests); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReportStore) writeBatch(requests []*dynamodb.WriteRequest) error {
	pending := map[string][]*dynamodb.WriteRequest{s.table: requests}
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		out, err := s.client.BatchWriteItem(&dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return errors.Wrap(err, "Error from DynamoDB")
		}
		if len(out.UnprocessedItems[s.table]) == 0 {
			return nil
		}
		pending = out.UnprocessedItems
		log.WithFields(log.Fields{
			"table":       s.table,
			"unprocessed": len(pending[s.table]),
			"attempt":     attempt,
		}).Warn("DynamoDB left items unprocessed")
	}
	return errors.Errorf("%d reports still unprocessed after %d attempts", len(pending[s.table]), maxWriteAttempts)
}

// GetReport looks up the report stored for path.
func (s *ReportStore) GetReport(path string) (model.MidiFileInfo, bool, error) {
	out, err := s.client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(path)},
		},
	})
	if err != nil {
		return model.MidiFileInfo{}, false, errors.Wrap(err, "Error from DynamoDB")
	}
	if len(out.Item) == 0 {
		return model.MidiFileInfo{}, false, nil
	}

	var item reportItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		return model.MidiFileInfo{}, false, errors.Wrap(err, "Could not unmarshal report")
	}
	info, err := fromItem(item)
	if err != nil {
		return model.MidiFileInfo{}, false, err
	}
	return info, true, nil
}

package domain

// Report описывает снимок склада, который хранится в S3
type Report struct {
	ID          string // uuid
	Bucket      string
	ObjectKey   string
	Data        []byte
	ContentType string // Example: "text/csv"
}

func NewReport(id string, bucket string, objectKey string, data []byte, contentType string) *Report {
	return &Report{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Data:        data,
		ContentType: contentType,
	}
}

package entity

type Review struct {
	AuthorName      string  `json:"author_name"`
	AuthorPhoto     string  `json:"author_photo,omitempty"`
	Rating          float64 `json:"rating"`
	Text            string  `json:"text"`
	TimeDescription string  `json:"time_description,omitempty"`
	PublishTime     string  `json:"publish_time,omitempty"`
}

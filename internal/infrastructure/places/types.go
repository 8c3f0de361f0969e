package places

// Wire types for the Google Places API (New).

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type searchTextRequest struct {
	TextQuery      string        `json:"textQuery"`
	LocationBias   *locationBias `json:"locationBias,omitempty"`
	MaxResultCount int           `json:"maxResultCount"`
}

type searchTextResponse struct {
	Places []placeResult `json:"places"`
}

type localizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type placeResult struct {
	ID               string        `json:"id"`
	DisplayName      localizedText `json:"displayName"`
	FormattedAddress string        `json:"formattedAddress"`
	Location         *latLng       `json:"location"`
	Rating           float64       `json:"rating"`
	BusinessStatus   string        `json:"businessStatus"`
	Types            []string      `json:"types"`
	PriceLevel       string        `json:"priceLevel"`
	UserRatingCount  int           `json:"userRatingCount"`
}

type authorAttribution struct {
	DisplayName string `json:"displayName"`
	URI         string `json:"uri"`
	PhotoURI    string `json:"photoUri"`
}

type reviewResult struct {
	AuthorAttribution              authorAttribution `json:"authorAttribution"`
	Rating                         float64           `json:"rating"`
	Text                           localizedText     `json:"text"`
	RelativePublishTimeDescription string            `json:"relativePublishTimeDescription"`
	PublishTime                    string            `json:"publishTime"`
}

type openingHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

type placeDetailsResponse struct {
	ID                       string         `json:"id"`
	DisplayName              localizedText  `json:"displayName"`
	FormattedAddress         string         `json:"formattedAddress"`
	Rating                   float64        `json:"rating"`
	UserRatingCount          int            `json:"userRatingCount"`
	Reviews                  []reviewResult `json:"reviews"`
	Photos                   []struct{}     `json:"photos"`
	RegularOpeningHours      *openingHours  `json:"regularOpeningHours"`
	InternationalPhoneNumber string         `json:"internationalPhoneNumber"`
	WebsiteURI               string         `json:"websiteUri"`
	BusinessStatus           string         `json:"businessStatus"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

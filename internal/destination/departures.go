package destination

// Region is the rail booking area a departure point belongs to.
type Region string

const (
	RegionEast   Region = "east"
	RegionWest   Region = "west"
	RegionKyushu Region = "kyushu"
)

// Departure holds the transport attributes of a departure point.
type Departure struct {
	Name       string `json:"name"`
	Station    string `json:"station"`
	Airport    string `json:"airport"`
	IATA       string `json:"iata"`
	Region     Region `json:"region"`
	NearestHub string `json:"nearest_hub,omitempty"`
}

// DepartureTable is an ordered, read-only set of departure points.
type DepartureTable struct {
	order  []string
	byName map[string]Departure
}

// NewDepartureTable builds a table from entries, keeping their order.
// Later entries with the same name replace earlier ones.
func NewDepartureTable(entries []Departure) *DepartureTable {
	t := &DepartureTable{byName: make(map[string]Departure, len(entries))}
	for _, d := range entries {
		if _, ok := t.byName[d.Name]; !ok {
			t.order = append(t.order, d.Name)
		}
		t.byName[d.Name] = d
	}
	return t
}

// Lookup returns the departure with the given name.
func (t *DepartureTable) Lookup(name string) (Departure, bool) {
	if t == nil {
		return Departure{}, false
	}
	d, ok := t.byName[name]
	return d, ok
}

// NearestHub returns the hub configured for name, if any.
func (t *DepartureTable) NearestHub(name string) (string, bool) {
	d, ok := t.Lookup(name)
	if !ok || d.NearestHub == "" || d.NearestHub == name {
		return "", false
	}
	return d.NearestHub, true
}

// All returns the departures in table order.
func (t *DepartureTable) All() []Departure {
	if t == nil {
		return nil
	}
	out := make([]Departure, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// DefaultDepartures returns the built-in departure table.
func DefaultDepartures() *DepartureTable {
	return NewDepartureTable(defaultDepartures)
}

var defaultDepartures = []Departure{
	// Hokkaido
	{Name: "札幌", Station: "札幌駅", Airport: "新千歳空港 国内線ターミナル", IATA: "CTS", Region: RegionEast},
	{Name: "函館", Station: "函館駅", Airport: "函館空港", IATA: "HKD", Region: RegionEast, NearestHub: "札幌"},
	{Name: "旭川", Station: "旭川駅", Airport: "旭川空港", IATA: "AKJ", Region: RegionEast, NearestHub: "札幌"},
	// Tohoku
	{Name: "仙台", Station: "仙台駅", Airport: "仙台空港", IATA: "SDJ", Region: RegionEast},
	{Name: "盛岡", Station: "盛岡駅", Airport: "いわて花巻空港", IATA: "HNA", Region: RegionEast, NearestHub: "仙台"},
	// Kanto
	{Name: "東京", Station: "東京駅", Airport: "羽田空港 国内線ターミナル", IATA: "TYO", Region: RegionEast},
	{Name: "横浜", Station: "横浜駅", Airport: "羽田空港 国内線ターミナル", IATA: "TYO", Region: RegionEast, NearestHub: "東京"},
	{Name: "千葉", Station: "千葉駅", Airport: "成田国際空港", IATA: "TYO", Region: RegionEast, NearestHub: "東京"},
	{Name: "大宮", Station: "大宮駅", Airport: "羽田空港 国内線ターミナル", IATA: "TYO", Region: RegionEast, NearestHub: "東京"},
	{Name: "宇都宮", Station: "宇都宮駅", Airport: "羽田空港 国内線ターミナル", IATA: "TYO", Region: RegionEast, NearestHub: "東京"},
	// Chubu
	{Name: "長野", Station: "長野駅", Airport: "松本空港", IATA: "MMJ", Region: RegionEast, NearestHub: "東京"},
	{Name: "静岡", Station: "静岡駅", Airport: "静岡空港", IATA: "FSZ", Region: RegionWest, NearestHub: "東京"},
	{Name: "名古屋", Station: "名古屋駅", Airport: "中部国際空港 セントレア", IATA: "NGO", Region: RegionWest},
	{Name: "金沢", Station: "金沢駅", Airport: "小松空港", IATA: "KMQ", Region: RegionWest, NearestHub: "大阪"},
	{Name: "富山", Station: "富山駅", Airport: "富山きときと空港", IATA: "TOY", Region: RegionWest, NearestHub: "大阪"},
	// Kinki
	{Name: "大阪", Station: "大阪駅", Airport: "大阪国際空港 国内線ターミナル", IATA: "OSA", Region: RegionWest},
	{Name: "京都", Station: "京都駅", Airport: "大阪国際空港 国内線ターミナル", IATA: "OSA", Region: RegionWest, NearestHub: "大阪"},
	{Name: "神戸", Station: "三ノ宮駅", Airport: "神戸空港", IATA: "UKB", Region: RegionWest, NearestHub: "大阪"},
	{Name: "奈良", Station: "奈良駅", Airport: "大阪国際空港 国内線ターミナル", IATA: "OSA", Region: RegionWest, NearestHub: "大阪"},
	// Chugoku
	{Name: "広島", Station: "広島駅", Airport: "広島空港", IATA: "HIJ", Region: RegionWest},
	{Name: "岡山", Station: "岡山駅", Airport: "岡山桃太郎空港", IATA: "OKJ", Region: RegionWest, NearestHub: "広島"},
	{Name: "松江", Station: "松江駅", Airport: "出雲縁結び空港", IATA: "IZO", Region: RegionWest, NearestHub: "広島"},
	// Shikoku
	{Name: "高松", Station: "高松駅", Airport: "高松空港", IATA: "TAK", Region: RegionWest},
	{Name: "松山", Station: "松山駅", Airport: "松山空港", IATA: "MYJ", Region: RegionWest, NearestHub: "高松"},
	{Name: "高知", Station: "高知駅", Airport: "高知龍馬空港", IATA: "KCZ", Region: RegionWest, NearestHub: "高松"},
	{Name: "徳島", Station: "徳島駅", Airport: "徳島阿波おどり空港", IATA: "TKS", Region: RegionWest, NearestHub: "高松"},
	// Kyushu
	{Name: "福岡", Station: "博多駅", Airport: "福岡空港 国内線ターミナル", IATA: "FUK", Region: RegionKyushu},
	{Name: "熊本", Station: "熊本駅", Airport: "熊本空港", IATA: "KMJ", Region: RegionKyushu, NearestHub: "福岡"},
	{Name: "鹿児島", Station: "鹿児島中央駅", Airport: "鹿児島空港", IATA: "KOJ", Region: RegionKyushu, NearestHub: "福岡"},
	{Name: "長崎", Station: "長崎駅", Airport: "長崎空港", IATA: "NGS", Region: RegionKyushu, NearestHub: "福岡"},
	{Name: "宮崎", Station: "宮崎駅", Airport: "宮崎ブーゲンビリア空港", IATA: "KMI", Region: RegionKyushu, NearestHub: "福岡"},
}

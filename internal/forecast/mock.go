package forecast

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Payload    *Payload
	Conditions *Current
	Err        error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchForecast(_, _ float64, _ int) (*Payload, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payload, nil
}

func (m *MockFetcher) FetchCurrent(_, _ float64) (*Current, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Conditions, nil
}

package constants

const (
	GetStatusByApiKey = `
	SELECT id, status FROM api_keys WHERE id = $1
	`

	InsertFlight = `
	INSERT INTO flights (id, airline, flight_number, source_city, departure_time, stops,
		arrival_time, destination_city, class, duration, days_left, price)
	VALUES (:id, :airline, :flight_number, :source_city, :departure_time, :stops,
		:arrival_time, :destination_city, :class, :duration, :days_left, :price)
	`

	DeleteAllFlights = `
	DELETE FROM flights
	`

	CountFlights = `
	SELECT COUNT(*) FROM flights
	`

	CountCities = `
	SELECT COUNT(DISTINCT city) FROM (
		SELECT source_city AS city FROM flights
		UNION
		SELECT destination_city FROM flights
	) AS cities
	`
)

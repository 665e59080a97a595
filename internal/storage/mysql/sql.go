package mysql

const upsertPlaceSQL = `
INSERT INTO places
  (id, name, categories, info, address_line, city, state, country, hours, amenities, map_link)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name         = VALUES(name),
  categories   = VALUES(categories),
  info         = VALUES(info),
  address_line = VALUES(address_line),
  city         = VALUES(city),
  state        = VALUES(state),
  country      = VALUES(country),
  hours        = VALUES(hours),
  amenities    = VALUES(amenities),
  map_link     = VALUES(map_link),
  updated_at   = CURRENT_TIMESTAMP
`

// Catalog order is id order.
const listPlacesSQL = `
SELECT
  id,
  name,
  categories,
  info,
  address_line,
  city,
  state,
  country,
  hours,
  amenities,
  map_link
FROM places
ORDER BY id
`

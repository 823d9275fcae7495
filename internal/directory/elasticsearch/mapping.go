package elasticsearch

// DefaultIndexName is used when Config.IndexName is empty.
const DefaultIndexName = "artfolio_artists"

// indexMapping keeps every searchable field a keyword so wildcard and term
// queries behave like the in-memory directory. sort_name holds the
// lowercased display name.
const indexMapping = `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "id":                { "type": "keyword" },
      "username":          { "type": "keyword" },
      "name":              { "type": "keyword" },
      "location":          { "type": "keyword" },
      "style":             { "type": "keyword" },
      "sort_name":         { "type": "keyword" },
      "bio_short":         { "type": "text", "index": false },
      "profile_image_url": { "type": "keyword", "index": false }
    }
  }
}`

package repository

import "github.com/xeipuuv/gojsonschema"

// activitiesDocumentSchema activities.json のスキーマ
// 操作に支障のある participants のみ厳密に検証し、説明などの null や 12.0 形式の定員は許容する
// participants の重複はファイル破損として扱う
const activitiesDocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["participants"],
    "properties": {
      "description": {"type": ["string", "null"]},
      "schedule": {"type": ["string", "null"]},
      "max_participants": {"type": ["integer", "null"], "minimum": 0},
      "participants": {
        "type": "array",
        "items": {"type": "string"},
        "uniqueItems": true
      },
      "category": {"type": ["string", "null"]},
      "datetime": {"type": ["string", "null"]}
    }
  }
}`

var activitiesSchemaLoader = gojsonschema.NewStringLoader(activitiesDocumentSchema)

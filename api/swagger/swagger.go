package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Elevate Careers API",
        "description": "Lead capture and paid training enrollment backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Pricing", "description": "Public program price listing"},
        {"name": "Enrollments", "description": "Training program enrollment"},
        {"name": "Payments", "description": "Gateway payment lifecycle"},
        {"name": "DiscoveryCalls", "description": "Services discovery call requests"},
        {"name": "TalentPool", "description": "Talent pool registration"}
    ],
    "paths": {
        "/training-programs": {
            "get": {
                "tags": ["Pricing"],
                "summary": "List training programs with prices",
                "parameters": [
                    {"name": "currency", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/training-enrollments": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll in a training program",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEnrollmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollments (operator)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "program", "in": "query", "type": "string"},
                    {"name": "payment_status", "in": "query", "type": "string"},
                    {"name": "enrollment_status", "in": "query", "type": "string"},
                    {"name": "email", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/training-enrollments/{id}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Fetch one enrollment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/payments/initialize": {
            "post": {
                "tags": ["Payments"],
                "summary": "Initialize a gateway transaction",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InitializePaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation or amount mismatch"},
                    "409": {"description": "Reference already initialized"}
                }
            }
        },
        "/payments/verify/{reference}": {
            "get": {
                "tags": ["Payments"],
                "summary": "Verify a transaction against the gateway",
                "parameters": [
                    {"name": "reference", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/payments/webhook": {
            "post": {
                "tags": ["Payments"],
                "summary": "Gateway webhook receiver",
                "responses": {
                    "200": {"description": "Processed"},
                    "401": {"description": "Signature rejected"}
                }
            }
        },
        "/payments/{reference}": {
            "get": {
                "tags": ["Payments"],
                "summary": "Fetch stored payment state",
                "parameters": [
                    {"name": "reference", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/payments/{reference}/receipt": {
            "get": {
                "tags": ["Payments"],
                "summary": "Download the PDF receipt for a completed payment",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "reference", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF receipt"},
                    "409": {"description": "Payment not completed"}
                }
            }
        },
        "/discovery-calls": {
            "post": {
                "tags": ["DiscoveryCalls"],
                "summary": "Request a discovery call",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDiscoveryCallRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["DiscoveryCalls"],
                "summary": "List discovery call requests (operator)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "service", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/talent-pool": {
            "post": {
                "tags": ["TalentPool"],
                "summary": "Register in the talent pool",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTalentProfileRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "CreateEnrollmentRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "country": {"type": "string"},
                "field_of_experience": {"type": "string"},
                "experience_level": {"type": "string"},
                "skills": {"type": "array", "items": {"type": "string"}},
                "area_of_study": {"type": "string"},
                "training_program": {"type": "string"},
                "currency": {"type": "string"}
            },
            "required": ["first_name", "last_name", "email", "phone", "country", "training_program"]
        },
        "InitializePaymentRequest": {
            "type": "object",
            "properties": {
                "reference": {"type": "string"},
                "email": {"type": "string"},
                "amount": {"type": "number"},
                "currency": {"type": "string"},
                "training_program": {"type": "string"},
                "customer_name": {"type": "string"},
                "callback_url": {"type": "string"}
            },
            "required": ["reference", "email", "amount", "training_program"]
        },
        "CreateDiscoveryCallRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "business_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "whatsapp": {"type": "string"},
                "service": {"type": "string"},
                "requirements": {"type": "string"}
            },
            "required": ["name", "business_name", "email", "phone", "service", "requirements"]
        },
        "CreateTalentProfileRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "country": {"type": "string"},
                "field_of_experience": {"type": "string"},
                "experience_level": {"type": "string"},
                "skills": {"type": "array", "items": {"type": "string"}},
                "cv_url": {"type": "string"},
                "video_url": {"type": "string"}
            },
            "required": ["full_name", "email", "country", "field_of_experience", "experience_level"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

package main

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"

	"extract-store/internal/domain"
	"extract-store/internal/service"
)

type apiGatewayHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// newAPIGatewayHandler adapta ExtractService a un proxy de API Gateway.
// RequestTimeEpoch llega en milisegundos. Un error de storage se devuelve tal cual a Lambda.
func newAPIGatewayHandler(svc *service.ExtractService) apiGatewayHandler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		body := []byte(req.Body)
		if req.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(req.Body)
			if err != nil {
				return toProxyResponse(domain.BadRequest(service.MsgMalformedPayload)), nil
			}
			body = decoded
		}

		resp, err := svc.Handle(ctx, body, req.RequestContext.RequestTimeEpoch)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		return toProxyResponse(resp), nil
	}
}

func toProxyResponse(resp domain.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}

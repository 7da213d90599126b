package orderform

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iurnickita/creditorder/internal/model"
	"github.com/iurnickita/creditorder/internal/service"
	"github.com/iurnickita/creditorder/internal/service/apiclient"
)

// ErrorClass - категория сбоя, по которой выбирается текст для оператора.
type ErrorClass int

const (
	ClassUnknown ErrorClass = iota
	// нет сети у самого клиента
	ClassConnectivity
	// запрос не дошёл до сервера
	ClassNetwork
	ClassTimeout
	ClassServer
	ClassClient
	ClassValidation
)

func (c ErrorClass) String() string {
	switch c {
	case ClassConnectivity:
		return "connectivity"
	case ClassNetwork:
		return "network"
	case ClassTimeout:
		return "timeout"
	case ClassServer:
		return "server"
	case ClassClient:
		return "client"
	case ClassValidation:
		return "validation"
	default:
		return "unknown"
	}
}

func Classify(err error, online bool) ErrorClass {
	if !online {
		return ClassConnectivity
	}
	if errors.Is(err, service.ErrInvalidPayload) {
		return ClassValidation
	}
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return ClassUnknown
	}
	switch {
	case apiErr.Kind == apiclient.KindNetwork:
		return ClassNetwork
	case apiErr.Kind == apiclient.KindTimeout, apiErr.Status == http.StatusRequestTimeout:
		return ClassTimeout
	case apiErr.Kind == apiclient.KindServer:
		return ClassServer
	case apiErr.Status == http.StatusBadRequest, apiErr.Status == http.StatusUnprocessableEntity:
		return ClassValidation
	default:
		return ClassClient
	}
}

func asAPIError(err error) *apiclient.Error {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

func loadErrorText(err error, online bool) string {
	text := "Erro ao carregar dados: "
	apiErr := asAPIError(err)
	switch class := Classify(err, online); {
	case class == ClassConnectivity:
		return text + "Sem conexão com a internet. Verifique sua conexão e tente novamente."
	case class == ClassNetwork:
		return text + "Falha na conexão com o servidor. O backend pode estar indisponível."
	case class == ClassServer:
		return text + "Erro interno do servidor. Tente novamente em alguns minutos."
	case apiErr != nil && apiErr.Status == http.StatusNotFound:
		return text + "Serviço não encontrado. Verifique se o backend está rodando."
	case apiErr != nil && apiErr.Status >= 400 && apiErr.Status < 500:
		return text + fmt.Sprintf("Erro no cliente (%d): %s", apiErr.Status, apiErr.StatusText)
	case err != nil && err.Error() != "":
		return text + err.Error()
	default:
		return text + "Erro desconhecido. Tente recarregar a página."
	}
}

func reloadErrorText(err error, online bool) string {
	text := "Falha ao reconectar: "
	switch Classify(err, online) {
	case ClassConnectivity:
		return text + "Ainda sem conexão com a internet."
	case ClassNetwork:
		return text + "Servidor ainda indisponível."
	}
	if err != nil && err.Error() != "" {
		return text + err.Error()
	}
	return text + "Erro desconhecido."
}

// submitErrorText возвращает текст и уровень уведомления для сбоя отправки заказа.
func submitErrorText(err error, online bool) (string, model.Severity) {
	const prefix = "Falha ao processar pedido: "
	class := Classify(err, online)
	apiErr := asAPIError(err)

	var text string
	switch {
	case class == ClassConnectivity:
		return prefix + "Sem conexão com a internet. Verifique sua conexão e tente novamente.", model.SeverityWarning
	case class == ClassNetwork:
		text = "Falha na comunicação com o servidor. O serviço pode estar temporariamente indisponível."
	case class == ClassTimeout:
		text = "Timeout na requisição. O servidor demorou muito para responder. Tente novamente."
	case apiErr != nil && apiErr.Status == http.StatusInternalServerError:
		text = "Erro interno do servidor. Nossa equipe foi notificada. Tente novamente em alguns minutos."
	case apiErr != nil && apiErr.Status == http.StatusServiceUnavailable:
		text = "Serviço temporariamente indisponível. Tente novamente em alguns minutos."
	case apiErr != nil && apiErr.Status == http.StatusBadRequest:
		text = "Dados inválidos: " + orDefault(apiErr.Message, "Verifique os dados do pedido.")
	case apiErr != nil && apiErr.Status == http.StatusUnprocessableEntity:
		text = "Erro de validação: " + orDefault(apiErr.Message, "Dados do pedido não passaram na validação.")
	case class == ClassValidation:
		text = "Dados inválidos: " + err.Error()
	case apiErr != nil && apiErr.Message != "":
		text = "Erro do servidor: " + apiErr.Message
	case apiErr != nil && apiErr.Status != 0:
		text = fmt.Sprintf("Erro HTTP %d: %s", apiErr.Status, orDefault(apiErr.StatusText, "Erro no servidor"))
	case err != nil && err.Error() != "":
		text = "Erro de conectividade: " + err.Error()
	default:
		text = "Erro desconhecido ao processar pedido"
	}
	return prefix + text, model.SeverityError
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// Canned transactional emails rendered by the email worker. Bodies are in
// pt-BR to match the product audience.

type tpl struct {
	subject string
	text    string
	html    string
}

var registry = map[string]tpl{
	"delete_confirmation": {
		subject: "Confirme a exclusão da sua conta FitLife AI",
		text: "Olá {{.Name}},\n\n" +
			"Recebemos um pedido para excluir sua conta. Para confirmar, use o código abaixo em até 30 minutos:\n\n" +
			"{{.Token}}\n\n" +
			"Se você não pediu a exclusão, ignore este email. Sua conta continuará ativa.\n",
		html: "<p>Olá {{.Name}},</p>" +
			"<p>Recebemos um pedido para excluir sua conta. Para confirmar, use o código abaixo em até 30 minutos:</p>" +
			"<p><strong>{{.Token}}</strong></p>" +
			"<p>Se você não pediu a exclusão, ignore este email. Sua conta continuará ativa.</p>",
	},
	"premium_welcome": {
		subject: "Bem-vindo ao FitLife AI Premium!",
		text: "Parabéns! Sua assinatura premium está ativa.\n\n" +
			"Agora você tem acesso ilimitado às sugestões de treino e nutrição personalizadas.\n\n" +
			"Bons treinos!\n",
		html: "<p>Parabéns! Sua assinatura premium está ativa.</p>" +
			"<p>Agora você tem acesso ilimitado às sugestões de treino e nutrição personalizadas.</p>" +
			"<p>Bons treinos!</p>",
	},
}

// Render fills the named template with data and returns subject, text and
// HTML bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	t, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	text, err = exec(name+"_text", t.text, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = exec(name+"_html", t.html, data)
	if err != nil {
		return "", "", "", err
	}
	return t.subject, text, html, nil
}

func exec(name, body string, data map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
